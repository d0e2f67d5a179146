package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/datagrid/internal/config"
	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/pubsub"
	"github.com/zjrosen/datagrid/internal/tracing"
	"github.com/zjrosen/datagrid/internal/ui/gridview"
	"github.com/zjrosen/datagrid/internal/ui/styles"
	"github.com/zjrosen/datagrid/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// envLogPath overrides where debug logs are written.
const envLogPath = "DATAGRID_LOG"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

// dataFlags are the command line overrides of the data and frozen column
// settings.
type dataFlags struct {
	csv      string
	sqlite   string
	query    string
	generate int
	seed     uint64
	frozen   string
	noWatch  bool
}

var flags dataFlags

var rootCmd = &cobra.Command{
	Use:   "datagrid",
	Short: "A virtualized terminal grid for CSV, SQLite and generated data",
	Long: `datagrid shows a dataset in a scrollable grid with a frozen header row
and a frozen leading column. Only the visible cells are ever bound to views, so
large datasets scroll as fast as small ones.

Examples:
  datagrid --csv people.csv
  datagrid --sqlite app.db --query "select * from users"
  datagrid --generate 100000 --frozen name`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .datagrid/config.yaml or ~/.config/datagrid/config.yaml)")
	pf.BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by "+log.EnvDebug+")")
	pf.StringVar(&flags.csv, "csv", "", "show a CSV file")
	pf.StringVar(&flags.sqlite, "sqlite", "", "show the result of --query against a SQLite database")
	pf.StringVarP(&flags.query, "query", "q", "", "SQL query for --sqlite")
	pf.IntVar(&flags.generate, "generate", 0, "show N generated rows")
	pf.Uint64Var(&flags.seed, "seed", 0, "seed for --generate")
	pf.StringVar(&flags.frozen, "frozen", "", "field to pin as the frozen column (\"id\" for the record id)")
	rootCmd.Flags().BoolVar(&flags.noWatch, "no-watch", false,
		"do not reload when the data file changes")
}

// defaultConfigPath is where a config is written when none is found.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".datagrid", "config.yaml")
	}
	return filepath.Join(home, ".config", "datagrid", "config.yaml")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .datagrid/config.yaml (current directory)
		// 2. ~/.config/datagrid/config.yaml (user config)
		if _, err := os.Stat(filepath.Join(".datagrid", "config.yaml")); err == nil {
			viper.SetConfigFile(filepath.Join(".datagrid", "config.yaml"))
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "datagrid"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = config.Defaults()
	_ = viper.Unmarshal(&cfg)
}

// configFilePath is the file layout changes are saved to.
func configFilePath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return defaultConfigPath()
}

// apply overrides c with the flags that were given. The last data source
// flag in csv, sqlite, generate order wins.
func (f dataFlags) apply(c *config.Config) {
	if f.csv != "" {
		c.Data.Source, c.Data.Path = config.SourceCSV, f.csv
	}
	if f.sqlite != "" {
		c.Data.Source, c.Data.Path = config.SourceSQLite, f.sqlite
	}
	if f.query != "" {
		c.Data.Query = f.query
	}
	if f.generate > 0 {
		c.Data.Source, c.Data.Rows = config.SourceGenerate, f.generate
	}
	if f.seed != 0 {
		c.Data.Seed = f.seed
	}
	switch f.frozen {
	case "":
	case "id":
		c.FrozenColumn.Enabled, c.FrozenColumn.Field = true, ""
	default:
		c.FrozenColumn.Enabled, c.FrozenColumn.Field = true, f.frozen
	}
	if f.noWatch {
		c.Data.Watch = false
	}
}

// sourceFor describes the dataset selected by d.
func sourceFor(d config.DataConfig, tracer trace.Tracer) datasource.Source {
	return datasource.Source{
		Kind:   datasource.Kind(d.Source),
		Path:   d.Path,
		Query:  d.Query,
		Rows:   d.Rows,
		Seed:   d.Seed,
		Tracer: tracer,
	}
}

// setupLogging installs the debug log when requested. The returned cleanup
// is never nil.
func setupLogging(prefix string) (func(), error) {
	if !log.DebugRequested(debugFlag) {
		return func() {}, nil
	}
	logPath := os.Getenv(envLogPath)
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix, log.OptionsFromEnv())
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "datagrid starting", "version", version, "logPath", logPath, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// prepare applies flags, validates the result and installs the theme.
func prepare(c *config.Config) error {
	flags.apply(c)
	if err := config.Validate(*c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(c.Theme.FlattenedColors()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

// newTracer starts the tracing provider when enabled. Without it the tracer
// is nil and shutdown does nothing.
func newTracer(tc tracing.Config, service string) (trace.Tracer, func(context.Context) error, error) {
	if !tc.Enabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	if tc.FilePath == "" && tc.Exporter == tracing.ExporterFile {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	if tc.ServiceName == "" || tc.ServiceName == tracing.DefaultServiceName {
		tc.ServiceName = service
	}
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	log.Debug(log.CatTrace, "tracing provider created", "exporter", tc.Exporter, "service", tc.ServiceName)
	return provider.Tracer(), provider.Shutdown, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupLogging("datagrid")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := prepare(&cfg); err != nil {
		return err
	}

	tracer, shutdown, err := newTracer(cfg.Tracing, tracing.DefaultServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	source := sourceFor(cfg.Data, tracer)
	table, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading %s: %w", source, err)
	}

	broker := pubsub.NewBroker[datasource.Reload](pubsub.WithBuffer(4), pubsub.WithOverflow(pubsub.DropOldest))
	defer broker.Close()
	reloader := datasource.NewReloader(source.String(), source.Load, broker)

	if cfg.Data.Watch && source.Watchable() {
		w, err := watcher.New(watcher.Config{Path: source.Path, Debounce: cfg.Data.WatchDebounce})
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		changes, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		go reloader.Run(ctx, changes)
	}

	zone.NewGlobal()
	model, err := gridview.New(ctx, gridview.Options{
		Config:     cfg,
		ConfigPath: configFilePath(),
		Table:      table,
		Source:     source.String(),
		Reloads:    broker,
		Reload:     reloader.Reload,
		Tracer:     tracer,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command until ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
