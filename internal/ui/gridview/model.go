// Package gridview is the Bubble Tea program that shows a dataset in a
// virtualized grid.
package gridview

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/datagrid/internal/config"
	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/grid"
	"github.com/zjrosen/datagrid/internal/keys"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/pubsub"
	"github.com/zjrosen/datagrid/internal/termhost"
	helpoverlay "github.com/zjrosen/datagrid/internal/ui/help"
	"github.com/zjrosen/datagrid/internal/ui/logpane"
	"github.com/zjrosen/datagrid/internal/ui/styles"
)

// Options configures a Model.
type Options struct {
	Config config.Config
	// ConfigPath is where the layout is saved. Empty disables saving.
	ConfigPath string
	Table      *datasource.Table
	// Source names the dataset in the status bar.
	Source string
	// Reloads delivers reload results. Nil disables live reload.
	Reloads pubsub.Subscriber[datasource.Reload]
	// Reload requests a reload. Its result arrives through Reloads.
	Reload func(ctx context.Context)
	Tracer trace.Tracer
}

// Model is the grid program's state.
type Model struct {
	ctx    context.Context
	cfg    config.Config
	path   string
	source string
	reload func(ctx context.Context)

	keys    keys.KeyMap
	help    help.Model
	overlay helpoverlay.Model

	grid  *grid.Grid
	host  *termhost.Host
	table *datasource.Table

	layouts      []columnLayout
	frozen       *grid.Column
	frozenLayout columnLayout
	pinned       bool

	listener *pubsub.Listener[datasource.Reload]
	details  *detailsPane

	logs        logpane.Model
	logListener *log.LogListener

	width, height int
	showDetails   bool
	showHelp      bool
	showStatus    bool

	status    string
	statusErr bool
}

// GridConfig converts the grid section of the configuration.
func GridConfig(c config.GridConfig, tracer trace.Tracer) grid.Config {
	cfg := grid.DefaultConfig()
	cfg.RowHeight = c.RowHeight
	cfg.RowSpacing = c.RowSpacing
	cfg.ColumnSpacing = c.ColumnSpacing
	cfg.HeaderHeight = c.HeaderHeight
	cfg.Tracer = tracer

	cfg.SelectionMode = grid.SelectionRow
	if c.SelectionMode == "none" {
		cfg.SelectionMode = grid.SelectionNone
	}
	cfg.SelectedBackground = styles.SelectionBgColor
	if c.SelectedColor != "" {
		cfg.SelectedBackground = lipgloss.Color(c.SelectedColor)
	}
	cfg.UnselectedBackground = lipgloss.NoColor{}
	if c.UnselectedColor != "" {
		cfg.UnselectedBackground = lipgloss.Color(c.UnselectedColor)
	}
	return cfg
}

// New builds the grid for opts.Table.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Table == nil {
		return Model{}, fmt.Errorf("gridview: no table")
	}

	km := keys.DefaultKeyMap()
	if opts.ConfigPath == "" {
		km.SaveLayout.SetEnabled(false)
	}
	if opts.Reload == nil {
		km.Reload.SetEnabled(false)
	}

	m := Model{
		ctx:         ctx,
		cfg:         opts.Config,
		path:        opts.ConfigPath,
		source:      opts.Source,
		reload:      opts.Reload,
		keys:        km,
		help:        help.New(),
		overlay:     helpoverlay.NewWithKeys(km),
		host:        termhost.New(),
		table:       opts.Table,
		details:     newDetailsPane(opts.Config.UI.MarkdownStyle),
		showDetails: opts.Config.UI.ShowDetails,
		showHelp:    opts.Config.UI.ShowHelp,
		showStatus:  opts.Config.UI.ShowStatusBar,
		pinned:      opts.Config.FrozenColumn.Enabled,
		logs:        logpane.New(logpane.DefaultCapacity),
		logListener: log.NewListener(ctx),
	}
	m.grid = grid.New(m.host, GridConfig(opts.Config.Grid, opts.Tracer))

	if err := m.applyColumns(); err != nil {
		return Model{}, err
	}
	if err := m.grid.SetRows(m.table.Rows); err != nil {
		return Model{}, fmt.Errorf("binding rows: %w", err)
	}
	if opts.Reloads != nil {
		m.listener = pubsub.NewLatestListener(ctx, opts.Reloads)
	}
	log.Info(log.CatUI, "grid view ready", "source", m.source, "rows", m.table.Rows.Len(), "columns", len(m.layouts))
	return m, nil
}

// applyColumns (re)builds the regular and frozen columns from the table's
// current fields.
func (m *Model) applyColumns() error {
	maxWidth := m.cfg.Data.MaxColumnWidth
	cols, layouts := buildColumns(m.table, m.cfg.Columns, maxWidth)
	m.layouts = layouts
	m.frozen, m.frozenLayout = buildFrozenColumn(m.table, m.cfg.FrozenColumn, maxWidth)

	if err := m.grid.SetColumns(grid.NewCollection(cols...)); err != nil {
		return fmt.Errorf("binding columns: %w", err)
	}
	return m.pinFrozen()
}

func (m *Model) pinFrozen() error {
	var c *grid.Column
	if m.pinned {
		c = m.frozen
	}
	if err := m.grid.SetFrozenColumn(c); err != nil {
		return fmt.Errorf("binding frozen column: %w", err)
	}
	return nil
}

// Init starts listening for reloads and log entries.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listener.Listen(), m.logListener.Listen())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.overlay = m.overlay.SetSize(msg.Width, msg.Height)
		m.logs.SetSize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pubsub.Event[datasource.Reload]:
		m.handleReload(msg)
		return m, m.listener.Listen()

	case log.LogEvent:
		// Must not log here: every entry would produce another event.
		m.logs.Append(msg.Payload)
		return m, m.logListener.Listen()
	}
	return m, nil
}

// Grid exposes the underlying grid.
func (m Model) Grid() *grid.Grid { return m.grid }

// Host exposes the terminal host the grid draws into.
func (m Model) Host() *termhost.Host { return m.host }

// ColumnFields returns the field shown by each regular column.
func (m Model) ColumnFields() []string {
	out := make([]string, len(m.layouts))
	for i, l := range m.layouts {
		out[i] = l.field
	}
	return out
}

// Logs exposes the log pane.
func (m Model) Logs() logpane.Model { return m.logs }

// Status returns the current status message and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string, err error) {
	m.status, m.statusErr = fmt.Sprintf("%s: %v", s, err), true
	log.ErrorErr(log.CatUI, s, err)
}

// gridSize is the cell area left for the grid after the details pane and
// status bar.
func (m Model) gridSize() (width, height int) {
	width, height = m.width, m.height
	if m.showStatus {
		height--
	}
	if m.showDetails {
		width -= m.detailsWidth()
	}
	return max(width, 0), max(height, 0)
}

func (m Model) detailsWidth() int {
	w := m.width / 3
	if w < minDetailsWidth {
		w = min(minDetailsWidth, m.width/2)
	}
	return w
}

func (m *Model) resize() {
	w, h := m.gridSize()
	if err := m.grid.SizeAllocated(float64(w), float64(h)); err != nil {
		m.setError("resize failed", err)
	}
}
