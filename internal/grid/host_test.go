package grid

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

// fakeView records everything a host would apply to a real view.
type fakeView struct {
	name   string
	data   any
	bg     lipgloss.TerminalColor
	bounds Rect
}

func (v *fakeView) DataContext() any { return v.data }
func (v *fakeView) SetBackground(c lipgloss.TerminalColor) { v.bg = c }
func (v *fakeView) String() string { return v.name }

// plainView cannot be highlighted.
type plainView struct{ data any }

func (v *plainView) DataContext() any { return v.data }

type fakeHost struct {
	children    map[PanelID][]View
	panels      map[PanelID]Rect
	boundsCalls int
	created     int
	onData      func(v View, data any)
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		children: make(map[PanelID][]View),
		panels:   make(map[PanelID]Rect),
	}
}

func (h *fakeHost) Attach(p PanelID, v View) {
	h.children[p] = append(h.children[p], v)
}

func (h *fakeHost) Detach(p PanelID, v View) {
	kids := h.children[p]
	for i, c := range kids {
		if c == v {
			h.children[p] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("detach of %v from %s which does not hold it", v, p))
}

func (h *fakeHost) SetBounds(v View, r Rect) {
	h.boundsCalls++
	if fv, ok := v.(*fakeView); ok {
		fv.bounds = r
	}
}

func (h *fakeHost) SetDataContext(v View, data any) {
	switch fv := v.(type) {
	case *fakeView:
		fv.data = data
	case *plainView:
		fv.data = data
	}
	if h.onData != nil {
		h.onData(v, data)
	}
}

func (h *fakeHost) SetPanelBounds(p PanelID, r Rect) {
	h.panels[p] = r
}

func (h *fakeHost) NewPlaceholder() View {
	h.created++
	return &fakeView{name: fmt.Sprintf("placeholder-%d", h.created)}
}

func (h *fakeHost) holds(p PanelID, v View) bool {
	for _, c := range h.children[p] {
		if c == v {
			return true
		}
	}
	return false
}

func cellTemplate(name string) Template {
	return TemplateFunc(func() any { return &fakeView{name: name} })
}

func column(name string, width float64) *Column {
	return NewColumn(cellTemplate(name)).WithWidth(width).WithHeader(&fakeView{name: "h-" + name})
}

func rowItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("r%d", i)
	}
	return items
}

// testConfig uses terminal-like units: one line per row, one header line,
// one cell of spacing between columns and none between rows.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RowHeight = 1
	cfg.RowSpacing = 0
	cfg.ColumnSpacing = 1
	cfg.HeaderHeight = 1
	cfg.SelectionMode = SelectionRow
	cfg.SelectedBackground = lipgloss.Color("1")
	cfg.UnselectedBackground = lipgloss.Color("0")
	return cfg
}

type fixture struct {
	host *fakeHost
	grid *Grid
	cols *Collection[*Column]
	rows *Collection[string]
}

// newFixture builds a 30x6 grid (5 visible content lines) over nCols columns
// of width 10 and nRows rows.
func newFixture(t require.TestingT, nCols, nRows int) *fixture {
	host := newFakeHost()
	g := New(host, testConfig())

	cols := NewCollection[*Column]()
	for i := 0; i < nCols; i++ {
		_ = cols.Append(column(fmt.Sprintf("c%d", i), 10))
	}
	rows := NewCollection(rowItems(nRows)...)

	require.NoError(t, g.SetColumns(cols))
	require.NoError(t, g.SetRows(rows))
	require.NoError(t, g.SizeAllocated(30, 6))
	return &fixture{host: host, grid: g, cols: cols, rows: rows}
}

// requireConsistent checks the binding table against itself, the viewport
// and the row data.
func requireConsistent(t require.TestingT, g *Grid) {
	p := g.pool

	count := 0
	for col, rows := range p.coordsToView {
		for row, v := range rows {
			c, ok := p.viewToCoords[v]
			require.True(t, ok, "view at (%d,%d) missing from reverse map", col, row)
			require.Equal(t, coord{col: col, row: row}, c, "reverse map disagrees")
			count++
		}
	}
	require.Equal(t, count, len(p.viewToCoords), "maps differ in size")

	cols := g.visibleColumnSpan()
	rows := g.visibleRowSpan()
	for v, c := range p.viewToCoords {
		require.True(t, rows.contains(c.row), "bound row %d outside %v", c.row, rows)
		if c.col >= 0 {
			require.True(t, cols.contains(c.col), "bound column %d outside %v", c.col, cols)
		} else {
			require.Positive(t, g.advance(-1), "frozen cell bound without a frozen column")
		}
		require.Equal(t, g.rows.Row(c.row), v.DataContext(), "stale data at (%d,%d)", c.col, c.row)

		found := false
		for _, pv := range p.inventory[c.col] {
			if pv == v {
				found = true
			}
		}
		require.True(t, found, "bound view not in pool of column %d", c.col)
	}

	if !cols.empty() && !rows.empty() {
		for col := cols.first; col <= cols.last; col++ {
			for row := rows.first; row <= rows.last; row++ {
				_, ok := p.lookup(col, row)
				require.True(t, ok, "visible (%d,%d) unbound", col, row)
			}
		}
	}
	if g.advance(-1) > 0 && !rows.empty() {
		for row := rows.first; row <= rows.last; row++ {
			_, ok := p.lookup(-1, row)
			require.True(t, ok, "frozen row %d unbound", row)
		}
	}

	require.Len(t, g.HeaderViews(), g.columnCount(), "one header per column")
}
