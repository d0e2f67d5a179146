package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/datagrid/internal/config"
	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/tracing"
	"github.com/zjrosen/datagrid/internal/ui/gridview"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Scroll a headless grid through the dataset and report view usage",
	Long: `Simulate renders the grid off screen, pages down to the last row and then
right to the last column, and prints a YAML report of how many views each
column created and how many cells were bound at once.

Example:
  datagrid simulate --generate 100000 --width 160 --height 50`,
	RunE: runSimulate,
}

var simOpts simulateOptions

type simulateOptions struct {
	width     int
	height    int
	maxFrames int
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVar(&simOpts.width, "width", 120, "terminal width in cells")
	simulateCmd.Flags().IntVar(&simOpts.height, "height", 40, "terminal height in lines")
	simulateCmd.Flags().IntVar(&simOpts.maxFrames, "max-frames", 100000, "stop after this many frames")
}

type columnReport struct {
	Field string `yaml:"field"`
	Views int    `yaml:"views"`
}

type cacheReport struct {
	Hits   uint64 `yaml:"hits"`
	Misses uint64 `yaml:"misses"`
}

type simulationReport struct {
	Source       string         `yaml:"source"`
	Rows         int            `yaml:"rows"`
	Width        int            `yaml:"width"`
	Height       int            `yaml:"height"`
	Frames       int            `yaml:"frames"`
	ViewsCreated int            `yaml:"views_created"`
	Columns      []columnReport `yaml:"columns"`
	PeakBound    int            `yaml:"peak_bound"`
	Binds        int            `yaml:"binds"`
	Unbinds      int            `yaml:"unbinds"`
	RenderCache  cacheReport    `yaml:"render_cache"`
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupLogging("datagrid-simulate")
	if err != nil {
		return err
	}
	defer cleanup()

	flags.noWatch = true
	if err := prepare(&cfg); err != nil {
		return err
	}

	tracer, shutdown, err := newTracer(cfg.Tracing, tracing.DefaultServiceName+"-simulate")
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	source := sourceFor(cfg.Data, tracer)
	table, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading %s: %w", source, err)
	}

	zone.NewGlobal()
	report, err := simulate(cmd.Context(), cfg, table, source.String(), simOpts)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report)
}

// simulate drives a grid view with page-down and then scroll-right keys
// until both offsets stop moving, rendering every frame.
func simulate(ctx context.Context, c config.Config, table *datasource.Table, name string, opts simulateOptions) (simulationReport, error) {
	if opts.width <= 0 || opts.height <= 0 {
		return simulationReport{}, fmt.Errorf("viewport must be positive, got %dx%d", opts.width, opts.height)
	}
	if opts.maxFrames <= 0 {
		opts.maxFrames = 1
	}

	m, err := gridview.New(ctx, gridview.Options{Config: c, Table: table, Source: name})
	if err != nil {
		return simulationReport{}, err
	}

	report := simulationReport{Source: name, Rows: table.Rows.Len(), Width: opts.width, Height: opts.height}
	m = send(m, tea.WindowSizeMsg{Width: opts.width, Height: opts.height})
	frame := func() {
		_ = m.View()
		report.Frames++
		report.PeakBound = max(report.PeakBound, m.Grid().BoundCount())
	}
	frame()

	passes := []tea.KeyMsg{
		{Type: tea.KeyPgDown},
		{Type: tea.KeyRunes, Runes: []rune{'l'}},
	}
	for _, key := range passes {
		for report.Frames < opts.maxFrames {
			x, y := m.Grid().ScrollOffset()
			m = send(m, key)
			if nx, ny := m.Grid().ScrollOffset(); nx == x && ny == y {
				break
			}
			frame()
		}
	}

	stats := m.Grid().Stats()
	report.ViewsCreated = stats.Created
	report.Binds = stats.Binds
	report.Unbinds = stats.Unbinds
	for i, field := range m.ColumnFields() {
		report.Columns = append(report.Columns, columnReport{Field: field, Views: m.Grid().PoolSize(i)})
	}
	cache := m.Host().Stats().Cache
	report.RenderCache = cacheReport{Hits: cache.Hits, Misses: cache.Misses}

	log.Info(log.CatGrid, "simulation finished", "frames", report.Frames, "peak_bound", report.PeakBound, "created", report.ViewsCreated)
	return report, nil
}

func send(m gridview.Model, msg tea.Msg) gridview.Model {
	next, _ := m.Update(msg)
	return next.(gridview.Model)
}

func writeReport(w io.Writer, r simulationReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return enc.Close()
}
