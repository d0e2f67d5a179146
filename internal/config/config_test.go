package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datagrid/internal/tracing"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, Defaults(), cfg)
	require.Equal(t, 500*time.Millisecond, cfg.Data.WatchDebounce)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestValidateGrid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GridConfig)
		wantErr string
	}{
		{"defaults", func(*GridConfig) {}, ""},
		{"zero row height", func(g *GridConfig) { g.RowHeight = 0 }, "grid.row_height must be positive"},
		{"negative spacing", func(g *GridConfig) { g.ColumnSpacing = -1 }, "must not be negative"},
		{"negative header", func(g *GridConfig) { g.HeaderHeight = -1 }, "grid.header_height"},
		{"no selection", func(g *GridConfig) { g.SelectionMode = "none" }, ""},
		{"bad selection", func(g *GridConfig) { g.SelectionMode = "cell" }, `grid.selection_mode must be "row" or "none", got "cell"`},
		{"good color", func(g *GridConfig) { g.SelectedColor = "#112233" }, ""},
		{"bad color", func(g *GridConfig) { g.UnselectedColor = "blue" }, "grid.unselected_color must be a hex color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Defaults().Grid
			tt.mutate(&g)
			err := ValidateGrid(g)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateColumns(t *testing.T) {
	require.NoError(t, ValidateColumns(nil), "no columns means every field")
	require.NoError(t, ValidateColumns([]ColumnConfig{{Field: "name"}, {Field: "score", Width: 6, Align: "right"}}))

	err := ValidateColumns([]ColumnConfig{{Field: "name"}, {Header: "Score"}})
	require.ErrorContains(t, err, "column 1: field is required")

	err = ValidateColumns([]ColumnConfig{{Field: "name", Width: -2}})
	require.ErrorContains(t, err, "column 0 (name): width must not be negative")

	err = ValidateColumns([]ColumnConfig{{Field: "name", Align: "justify"}})
	require.ErrorContains(t, err, `column 0 (name): align must be "left", "center" or "right", got "justify"`)
}

func TestValidateData(t *testing.T) {
	tests := []struct {
		name    string
		data    DataConfig
		wantErr string
	}{
		{"generate", DataConfig{Source: "generate", Rows: 10}, ""},
		{"empty source generates", DataConfig{}, ""},
		{"negative rows", DataConfig{Source: "generate", Rows: -1}, "data.rows must not be negative"},
		{"csv", DataConfig{Source: "csv", Path: "x.csv"}, ""},
		{"csv without path", DataConfig{Source: "csv"}, `data.path is required when source is "csv"`},
		{"sqlite", DataConfig{Source: "sqlite", Path: "x.db", Query: "SELECT 1"}, ""},
		{"sqlite without query", DataConfig{Source: "sqlite", Path: "x.db"}, `data.query is required`},
		{"unknown", DataConfig{Source: "parquet"}, `data.source must be`},
		{"negative debounce", DataConfig{WatchDebounce: -time.Second}, "data.watch_debounce"},
		{"negative max width", DataConfig{MaxColumnWidth: -1}, "data.max_column_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateData(tt.data)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateUIAndFrozen(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "dark"}))
	require.ErrorContains(t, ValidateUI(UIConfig{MarkdownStyle: "neon"}), `ui.markdown_style "neon"`)
	require.ErrorContains(t, ValidateFrozenColumn(FrozenConfig{Width: -1}), "frozen_column.width")
}

func TestValidateTheme(t *testing.T) {
	nested := ThemeConfig{Colors: map[string]any{
		"grid": map[string]any{"header": "#FF0000"},
		"text.primary": "#FFFFFF",
	}}
	require.NoError(t, ValidateTheme(nested))
	require.Equal(t, map[string]string{"grid.header": "#FF0000", "text.primary": "#FFFFFF"}, nested.FlattenedColors())

	yamlStyle := ThemeConfig{Colors: map[string]any{
		"grid": map[any]any{"selection": "#000000"},
	}}
	require.Equal(t, map[string]string{"grid.selection": "#000000"}, yamlStyle.FlattenedColors())

	require.ErrorContains(t, ValidateTheme(ThemeConfig{Colors: map[string]any{"grid.nope": "#000000"}}), `unknown color token "grid.nope"`)
	require.ErrorContains(t, ValidateTheme(ThemeConfig{Colors: map[string]any{"grid.header": "red"}}), "invalid hex color")
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(tracing.DefaultConfig()))

	bad := tracing.DefaultConfig()
	bad.SampleRate = 1.5
	require.ErrorContains(t, ValidateTracing(bad), "tracing.sample_rate")

	bad = tracing.DefaultConfig()
	bad.Exporter = "zipkin"
	require.ErrorContains(t, ValidateTracing(bad), "tracing.exporter")

	enabled := tracing.DefaultConfig()
	enabled.Enabled = true
	require.ErrorContains(t, ValidateTracing(enabled), "tracing.file_path is required")

	enabled.Exporter = "otlp"
	enabled.OTLPEndpoint = ""
	require.ErrorContains(t, ValidateTracing(enabled), "tracing.otlp_endpoint is required")
}

func TestValidate_JoinsSections(t *testing.T) {
	cfg := Defaults()
	cfg.Grid.RowHeight = 0
	cfg.Data.Source = "csv"

	err := Validate(cfg)
	require.ErrorContains(t, err, "grid.row_height")
	require.ErrorContains(t, err, "data.path is required")
}
