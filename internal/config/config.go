// Package config provides configuration types and defaults for datagrid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/tracing"
	"github.com/zjrosen/datagrid/internal/ui/styles"
)

// Config holds all configuration options for datagrid.
type Config struct {
	Grid         GridConfig     `mapstructure:"grid"`
	Columns      []ColumnConfig `mapstructure:"columns"`
	FrozenColumn FrozenConfig   `mapstructure:"frozen_column"`
	Data         DataConfig     `mapstructure:"data"`
	UI           UIConfig       `mapstructure:"ui"`
	Theme        ThemeConfig    `mapstructure:"theme"`
	Tracing      tracing.Config `mapstructure:"tracing"`
}

// GridConfig holds the grid's geometry and selection settings. Units are
// terminal cells.
type GridConfig struct {
	RowHeight       float64 `mapstructure:"row_height"`
	RowSpacing      float64 `mapstructure:"row_spacing"`
	ColumnSpacing   float64 `mapstructure:"column_spacing"`
	HeaderHeight    float64 `mapstructure:"header_height"`
	SelectionMode   string  `mapstructure:"selection_mode"`   // "row" (default) or "none"
	SelectedColor   string  `mapstructure:"selected_color"`   // hex color; empty uses the theme
	UnselectedColor string  `mapstructure:"unselected_color"` // hex color; empty means none
}

// ColumnConfig defines one displayed field.
type ColumnConfig struct {
	Field  string `mapstructure:"field"`
	Header string `mapstructure:"header"` // defaults to Field
	Width  int    `mapstructure:"width"`  // 0 sizes from the data
	Align  string `mapstructure:"align"`  // "left" (default), "center" or "right"
}

// FrozenConfig defines the column pinned to the left edge.
type FrozenConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Field   string `mapstructure:"field"` // empty shows the record id
	Header  string `mapstructure:"header"`
	Width   int    `mapstructure:"width"` // 0 sizes from the data
}

// DataConfig selects and watches the dataset.
type DataConfig struct {
	Source         string        `mapstructure:"source"` // "generate", "csv" or "sqlite"
	Path           string        `mapstructure:"path"`
	Query          string        `mapstructure:"query"`
	Rows           int           `mapstructure:"rows"`
	Seed           uint64        `mapstructure:"seed"`
	Watch          bool          `mapstructure:"watch"`
	WatchDebounce  time.Duration `mapstructure:"watch_debounce"`
	MaxColumnWidth int           `mapstructure:"max_column_width"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowDetails   bool   `mapstructure:"show_details"`
	ShowHelp      bool   `mapstructure:"show_help"`
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "auto" (default), "dark", "light" or "notty"
}

// ThemeConfig overrides individual color tokens.
type ThemeConfig struct {
	// Colors supports both nested YAML and quoted dot notation:
	//   colors:
	//     grid:
	//       header: "#FF0000"
	//     "text.primary": "#FFFFFF"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Data source names.
const (
	SourceGenerate = "generate"
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
)

// DefaultTracesFilePath returns ~/.config/datagrid/traces/traces.jsonl, or
// "" if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "datagrid", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Grid: GridConfig{
			RowHeight:     1,
			RowSpacing:    0,
			ColumnSpacing: 1,
			HeaderHeight:  1,
			SelectionMode: "row",
		},
		FrozenColumn: FrozenConfig{
			Enabled: true,
			Header:  "#",
		},
		Data: DataConfig{
			Source:         SourceGenerate,
			Rows:           1000,
			Seed:           1,
			Watch:          true,
			WatchDebounce:  500 * time.Millisecond,
			MaxColumnWidth: 30,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "auto",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks every section and joins the problems found.
func Validate(c Config) error {
	return errors.Join(
		ValidateGrid(c.Grid),
		ValidateColumns(c.Columns),
		ValidateFrozenColumn(c.FrozenColumn),
		ValidateData(c.Data),
		ValidateUI(c.UI),
		ValidateTheme(c.Theme),
		ValidateTracing(c.Tracing),
	)
}

// ValidateGrid checks geometry and selection settings.
func ValidateGrid(g GridConfig) error {
	if g.RowHeight <= 0 {
		return fmt.Errorf("grid.row_height must be positive, got %v", g.RowHeight)
	}
	if g.RowSpacing < 0 || g.ColumnSpacing < 0 {
		return fmt.Errorf("grid.row_spacing and grid.column_spacing must not be negative")
	}
	if g.HeaderHeight < 0 {
		return fmt.Errorf("grid.header_height must not be negative, got %v", g.HeaderHeight)
	}
	switch g.SelectionMode {
	case "", "row", "none":
	default:
		return fmt.Errorf("grid.selection_mode must be \"row\" or \"none\", got %q", g.SelectionMode)
	}
	for name, c := range map[string]string{"selected_color": g.SelectedColor, "unselected_color": g.UnselectedColor} {
		if c != "" && !styles.IsValidHexColor(c) {
			return fmt.Errorf("grid.%s must be a hex color, got %q", name, c)
		}
	}
	return nil
}

// ValidateColumns checks column definitions. No columns means one column
// per dataset field.
func ValidateColumns(cols []ColumnConfig) error {
	for i, col := range cols {
		if col.Field == "" {
			return fmt.Errorf("column %d: field is required", i)
		}
		if col.Width < 0 {
			return fmt.Errorf("column %d (%s): width must not be negative", i, col.Field)
		}
		if err := validateAlign(col.Align); err != nil {
			return fmt.Errorf("column %d (%s): %w", i, col.Field, err)
		}
	}
	return nil
}

func validateAlign(a string) error {
	switch a {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("align must be \"left\", \"center\" or \"right\", got %q", a)
	}
}

// ValidateFrozenColumn checks the frozen column definition.
func ValidateFrozenColumn(f FrozenConfig) error {
	if f.Width < 0 {
		return fmt.Errorf("frozen_column.width must not be negative, got %d", f.Width)
	}
	return nil
}

// ValidateData checks that the selected source has what it needs.
func ValidateData(d DataConfig) error {
	switch d.Source {
	case "", SourceGenerate:
		if d.Rows < 0 {
			return fmt.Errorf("data.rows must not be negative, got %d", d.Rows)
		}
	case SourceCSV:
		if d.Path == "" {
			return fmt.Errorf("data.path is required when source is \"csv\"")
		}
	case SourceSQLite:
		if d.Path == "" {
			return fmt.Errorf("data.path is required when source is \"sqlite\"")
		}
		if d.Query == "" {
			return fmt.Errorf("data.query is required when source is \"sqlite\"")
		}
	default:
		return fmt.Errorf("data.source must be \"generate\", \"csv\" or \"sqlite\", got %q", d.Source)
	}
	if d.WatchDebounce < 0 {
		return fmt.Errorf("data.watch_debounce must not be negative, got %v", d.WatchDebounce)
	}
	if d.MaxColumnWidth < 0 {
		return fmt.Errorf("data.max_column_width must not be negative, got %d", d.MaxColumnWidth)
	}
	return nil
}

// ValidateUI checks user interface settings.
func ValidateUI(u UIConfig) error {
	switch u.MarkdownStyle {
	case "", "auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style %q is not a known style", u.MarkdownStyle)
	}
}

// ValidateTheme checks color overrides without applying them.
func ValidateTheme(t ThemeConfig) error {
	for token, value := range t.FlattenedColors() {
		if !styles.IsValidToken(styles.ColorToken(token)) {
			return fmt.Errorf("theme.colors: unknown color token %q", token)
		}
		if !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", token, value)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# datagrid configuration

# Grid geometry in terminal cells
grid:
  row_height: 1
  row_spacing: 0
  column_spacing: 1
  header_height: 1
  selection_mode: row        # row or none
  # selected_color: "#3C3C6E" # selection background (default: theme)
  # unselected_color: ""      # background of unselected rows (default: none)

# Columns to show, in order. Leave empty to show every field.
# columns:
#   - field: name
#     header: Name
#     width: 20     # 0 sizes from the data
#     align: left   # left, center or right
#   - field: score
#     align: right

# Column pinned to the left edge while scrolling sideways
frozen_column:
  enabled: true
  header: "#"
  # field: id       # empty shows the record id
  # width: 8        # 0 sizes from the data

# Dataset
data:
  source: generate   # generate, csv or sqlite
  rows: 1000         # generate only
  seed: 1            # generate only
  # path: ./people.csv
  # query: SELECT * FROM people   # sqlite only
  watch: true        # reload when the file changes
  watch_debounce: 500ms
  max_column_width: 30

# UI settings
ui:
  show_details: false
  show_help: false
  show_status_bar: true
  markdown_style: auto   # auto, dark, light, notty, ...

# Color overrides by token
# theme:
#   colors:
#     grid.header: "#94E2D5"
#     grid.selection: "#3C3C6E"
#     text.primary: "#FFFFFF"

# Tracing of grid updates and data loads
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/datagrid/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
