package gridview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/datagrid/internal/config"
	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/grid"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/termhost"
)

// columnLayout is what the view remembers about a displayed column beyond
// what the grid column itself holds.
type columnLayout struct {
	field  string
	index  int
	header string
	align  lipgloss.Position
	upper  bool
}

// template builds the cell template for the layout's current settings.
func (l columnLayout) template(kind termhost.Kind) grid.Template {
	format := fieldFormat(l.index)
	if l.upper {
		format = termhost.Upper(format)
	}
	return termhost.TextTemplate(format, termhost.WithAlign(l.align), termhost.WithKind(kind))
}

func (l columnLayout) config(width float64) config.ColumnConfig {
	c := config.ColumnConfig{Field: l.field, Header: l.header, Width: int(width)}
	switch l.align {
	case lipgloss.Right:
		c.Align = "right"
	case lipgloss.Center:
		c.Align = "center"
	}
	return c
}

// fieldFormat shows the i-th value of a bound record. A negative index shows
// the record id.
func fieldFormat(i int) termhost.FormatFunc {
	return func(data any) string {
		r, ok := data.(datasource.Record)
		if !ok {
			return ""
		}
		if i < 0 {
			return r.ID
		}
		return r.Value(i)
	}
}

func parseAlign(s string) lipgloss.Position {
	switch strings.ToLower(s) {
	case "right":
		return lipgloss.Right
	case "center":
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

// buildColumns returns the displayed columns for table. Configured columns
// win; without any, every field is shown and sized from the data. Configured
// fields missing from the table are skipped.
func buildColumns(table *datasource.Table, cols []config.ColumnConfig, maxWidth int) ([]*grid.Column, []columnLayout) {
	records := table.Rows.Items()
	auto := datasource.AutoColumns(table.Fields, records, maxWidth)

	var layouts []columnLayout
	var widths []int
	if len(cols) == 0 {
		for _, spec := range auto {
			layouts = append(layouts, columnLayout{field: table.Fields[spec.Field], index: spec.Field, header: spec.Header})
			widths = append(widths, spec.Width)
		}
	} else {
		for _, c := range cols {
			idx := table.FieldIndex(c.Field)
			if idx < 0 {
				log.Warn(log.CatUI, "configured column not in dataset", "field", c.Field)
				continue
			}
			header := c.Header
			if header == "" {
				header = c.Field
			}
			width := c.Width
			if width <= 0 {
				width = auto[idx].Width
			}
			layouts = append(layouts, columnLayout{field: c.Field, index: idx, header: header, align: parseAlign(c.Align)})
			widths = append(widths, width)
		}
	}

	columns := make([]*grid.Column, len(layouts))
	for i, l := range layouts {
		columns[i] = grid.NewColumn(l.template(termhost.KindCell)).
			WithWidth(float64(widths[i])).
			WithHeader(termhost.NewHeader(l.header, termhost.WithAlign(l.align)))
	}
	return columns, layouts
}

// buildFrozenColumn returns the column pinned to the left edge. It is built
// even when disabled so it can be toggled on. An empty or unknown field pins
// the record id.
func buildFrozenColumn(table *datasource.Table, fc config.FrozenConfig, maxWidth int) (*grid.Column, columnLayout) {
	layout := columnLayout{field: fc.Field, index: -1, header: fc.Header}
	if fc.Field != "" {
		if idx := table.FieldIndex(fc.Field); idx >= 0 {
			layout.index = idx
		} else {
			log.Warn(log.CatUI, "frozen field not in dataset, using record id", "field", fc.Field)
			layout.field = ""
		}
	}
	width := fc.Width
	if width <= 0 {
		width = frozenWidth(table, layout, maxWidth)
	}
	col := grid.NewColumn(layout.template(termhost.KindFrozen)).
		WithWidth(float64(width)).
		WithHeader(termhost.NewHeader(layout.header, termhost.WithKind(termhost.KindFrozen)))
	return col, layout
}

func frozenWidth(table *datasource.Table, layout columnLayout, maxWidth int) int {
	format := fieldFormat(layout.index)
	records := table.Rows.Items()
	values := make([]datasource.Record, len(records))
	for i, r := range records {
		values[i] = datasource.Record{Values: []string{format(r)}}
	}
	return datasource.AutoColumns([]string{layout.header}, values, maxWidth)[0].Width
}
