package grid

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/tracing"
)

// SelectionMode controls whether rows can be selected.
type SelectionMode int

const (
	SelectionNone SelectionMode = iota
	SelectionRow
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionNone:
		return "none"
	case SelectionRow:
		return "row"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Config holds the initial grid properties.
type Config struct {
	RowHeight     float64
	RowSpacing    float64
	ColumnSpacing float64
	HeaderHeight  float64

	SelectionMode        SelectionMode
	SelectedBackground   lipgloss.TerminalColor
	UnselectedBackground lipgloss.TerminalColor

	// Tracer records a span per structural change and scroll pass.
	// Nil means no tracing.
	Tracer trace.Tracer

	// OnSelectionChanged is called after the selected row index changes.
	OnSelectionChanged func(prev, cur int)
}

// DefaultConfig returns the stock grid properties.
func DefaultConfig() Config {
	return Config{
		RowHeight:            50,
		RowSpacing:           2,
		ColumnSpacing:        2,
		HeaderHeight:         50,
		SelectionMode:        SelectionNone,
		SelectedBackground:   lipgloss.AdaptiveColor{Light: "#D0D0F0", Dark: "#3C3C6E"},
		UnselectedBackground: lipgloss.NoColor{},
	}
}

// Stats counts pool activity over the life of a grid.
type Stats struct {
	Created int // views created from templates
	Binds   int // coordinate bindings performed
	Unbinds int // coordinate bindings released
}

// Grid binds the visible part of a rows x columns dataset to recycled views.
type Grid struct {
	host Host

	rowHeight     float64
	rowSpacing    float64
	columnSpacing float64
	headerHeight  float64

	selectionMode SelectionMode
	selectedBg    lipgloss.TerminalColor
	unselectedBg  lipgloss.TerminalColor
	selected      int
	onSelect      func(prev, cur int)

	rows       Rows
	rowsUnsub  func()
	columns    *Collection[*Column]
	colsUnsub  func()
	columnSubs map[*Column]func()
	frozen     *Column
	frozenSub  func()

	width, height float64
	offX, offY    float64

	geom geometry
	pool *pool

	main      *panel
	frozenRow *panel
	frozenCol *panel
	corner    *panel

	placeholders map[*Column]View
	cornerView   View

	updating bool
	handlers map[Attribute]func() error

	tracer  trace.Tracer
	spanCtx context.Context

	stats Stats
}

// New returns an empty grid driving host.
func New(host Host, cfg Config) *Grid {
	g := &Grid{
		host:          host,
		rowHeight:     cfg.RowHeight,
		rowSpacing:    cfg.RowSpacing,
		columnSpacing: cfg.ColumnSpacing,
		headerHeight:  cfg.HeaderHeight,
		selectionMode: cfg.SelectionMode,
		selectedBg:    cfg.SelectedBackground,
		unselectedBg:  cfg.UnselectedBackground,
		selected:      -1,
		onSelect:      cfg.OnSelectionChanged,
		columnSubs:    make(map[*Column]func()),
		pool:          newPool(),
		placeholders:  make(map[*Column]View),
		tracer:        cfg.Tracer,
		spanCtx:       context.Background(),
	}
	if g.tracer == nil {
		g.tracer = noop.NewTracerProvider().Tracer("grid")
	}
	if g.selectedBg == nil {
		g.selectedBg = lipgloss.NoColor{}
	}
	if g.unselectedBg == nil {
		g.unselectedBg = lipgloss.NoColor{}
	}

	g.main = &panel{id: PanelMain, box: g.mainBox}
	g.frozenRow = &panel{id: PanelFrozenRow, box: g.frozenRowBox}
	g.frozenCol = &panel{id: PanelFrozenColumn, box: g.frozenColumnBox}
	g.corner = &panel{id: PanelCorner, box: g.cornerBox}
	g.handlers = g.dispatchTable()
	return g
}

// traced runs fn in a span nested under any span already in progress.
func (g *Grid) traced(name string, fn func() error, attrs ...attribute.KeyValue) error {
	parent := g.spanCtx
	return tracing.Run(parent, g.tracer, tracing.SpanPrefixGrid+name, func(ctx context.Context) error {
		g.spanCtx = ctx
		defer func() { g.spanCtx = parent }()

		err := fn()
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int(tracing.AttrGridBound, g.pool.boundCount()),
			attribute.Int(tracing.AttrGridPooled, g.pool.totalSize()),
			attribute.Float64(tracing.AttrScrollX, g.offX),
			attribute.Float64(tracing.AttrScrollY, g.offY),
		)
		return err
	}, attrs...)
}

// Accessors.

func (g *Grid) Rows() Rows { return g.rows }
func (g *Grid) Columns() *Collection[*Column] { return g.columns }
func (g *Grid) FrozenColumn() *Column { return g.frozen }
func (g *Grid) RowHeight() float64 { return g.rowHeight }
func (g *Grid) RowSpacing() float64 { return g.rowSpacing }
func (g *Grid) ColumnSpacing() float64 { return g.columnSpacing }
func (g *Grid) HeaderHeight() float64 { return g.headerHeight }
func (g *Grid) SelectionMode() SelectionMode { return g.selectionMode }
func (g *Grid) SelectedRowIndex() int { return g.selected }
func (g *Grid) Size() (width, height float64) { return g.width, g.height }
func (g *Grid) ScrollOffset() (x, y float64) { return g.offX, g.offY }
func (g *Grid) Stats() Stats { return g.stats }
func (g *Grid) BoundCount() int { return g.pool.boundCount() }
func (g *Grid) PoolSize(col int) int { return g.pool.size(col) }
func (g *Grid) CornerView() View { return g.cornerView }
func (g *Grid) ViewAt(col, row int) (View, bool) { return g.pool.lookup(col, row) }
func (g *Grid) RowStep() float64 { return g.rowHeight + g.rowSpacing }
func (g *Grid) PanelChildren(p PanelID) []View { return append([]View(nil), g.panel(p).children...) }
func (g *Grid) HeaderViews() []View { return g.PanelChildren(PanelFrozenRow) }
func (g *Grid) ColumnWidth(col int) float64 { return g.columnWidth(col) }
func (g *Grid) SelectedBackground() lipgloss.TerminalColor { return g.selectedBg }

// CoordsOf returns the coordinate v is bound to.
func (g *Grid) CoordsOf(v View) (col, row int, ok bool) {
	c, ok := g.pool.coordsOf(v)
	if !ok {
		return -1, -1, false
	}
	return c.col, c.row, true
}

// Edge returns the cached left edge of a regular column.
func (g *Grid) Edge(col int) float64 {
	g.ensureGeometry()
	return g.geom.edges[col]
}

// ContentWidth returns the total width of the regular columns.
func (g *Grid) ContentWidth() float64 {
	g.ensureGeometry()
	return g.geom.total
}

// VisibleColumns returns the inclusive range of regular columns in view.
func (g *Grid) VisibleColumns() (first, last int, ok bool) {
	s := g.visibleColumnSpan()
	return s.first, s.last, !s.empty()
}

// VisibleRows returns the inclusive range of rows in view.
func (g *Grid) VisibleRows() (first, last int, ok bool) {
	s := g.visibleRowSpan()
	return s.first, s.last, !s.empty()
}

// ScrollMax returns the largest offsets SetScrollOffset accepts.
func (g *Grid) ScrollMax() (x, y float64) {
	fcw, frh := g.frozenExtent()
	x = math.Max(0, g.ContentWidth()-(g.width-fcw))
	y = math.Max(0, g.RowStep()*float64(g.rowCount())-(g.height-frh))
	return x, y
}

// MainViewport returns the size of the scrolling area.
func (g *Grid) MainViewport() (width, height float64) {
	fcw, frh := g.frozenExtent()
	return math.Max(0, g.width-fcw), math.Max(0, g.height-frh)
}

func (g *Grid) panel(p PanelID) *panel {
	switch p {
	case PanelFrozenRow:
		return g.frozenRow
	case PanelFrozenColumn:
		return g.frozenCol
	case PanelCorner:
		return g.corner
	default:
		return g.main
	}
}

func (g *Grid) rowCount() int {
	if g.rows == nil {
		return 0
	}
	return g.rows.Len()
}

func (g *Grid) columnCount() int {
	if g.columns == nil {
		return 0
	}
	return g.columns.Len()
}

// column returns the descriptor at col, the frozen column for col < 0.
func (g *Grid) column(col int) *Column {
	if col < 0 {
		return g.frozen
	}
	if col >= g.columnCount() {
		return nil
	}
	return g.columns.At(col)
}

func (g *Grid) columnWidth(col int) float64 {
	if c := g.column(col); c != nil {
		return c.Width()
	}
	return 0
}

func (g *Grid) advance(col int) float64 {
	return advanceFor(g.columnWidth(col), g.columnSpacing)
}

func (g *Grid) ensureGeometry() {
	g.geom.ensure(g.columnCount(), g.advance)
}

// frozenExtent is the space the frozen column and frozen row take from the
// scrolling area.
func (g *Grid) frozenExtent() (fcw, frh float64) {
	fcw = math.Max(0, g.advance(-1))
	frh = math.Max(0, g.headerHeight+g.rowSpacing)
	return fcw, frh
}

func (g *Grid) visibleColumnSpan() span {
	g.ensureGeometry()
	w, _ := g.MainViewport()
	return visibleColumns(g.geom.edges, g.advance, g.offX, w)
}

func (g *Grid) visibleRowSpan() span {
	_, h := g.MainViewport()
	return visibleRows(g.offY, h, g.RowStep(), g.rowCount())
}

func (g *Grid) rowItem(row int) any {
	if row < 0 || row >= g.rowCount() {
		return nil
	}
	return g.rows.Row(row)
}

// SizeAllocated is called by the host whenever the grid's size changes.
func (g *Grid) SizeAllocated(width, height float64) error {
	return g.traced("size_allocated", func() error {
		g.width, g.height = width, height
		log.Debug(log.CatGrid, "size allocated", "width", width, "height", height)
		g.layoutPanels()
		return g.refresh()
	})
}

// layoutPanels pushes the four panel rectangles to the host.
func (g *Grid) layoutPanels() {
	fcw, frh := g.frozenExtent()
	w := math.Max(0, g.width-fcw)
	h := math.Max(0, g.height-frh)

	g.host.SetPanelBounds(PanelFrozenRow, Rect{X: fcw, Y: 0, Width: w, Height: frh})
	g.host.SetPanelBounds(PanelFrozenColumn, Rect{X: 0, Y: frh, Width: fcw, Height: h})
	g.host.SetPanelBounds(PanelCorner, Rect{X: 0, Y: 0, Width: fcw, Height: frh})
	g.host.SetPanelBounds(PanelMain, Rect{X: fcw, Y: frh, Width: w, Height: h})
}

// layoutAll repositions every child of every panel.
func (g *Grid) layoutAll() {
	g.main.layoutAll(g.host)
	g.frozenRow.layoutAll(g.host)
	g.frozenCol.layoutAll(g.host)
	g.corner.layoutAll(g.host)
}

// refresh clamps the scroll offset to the current content, then brings
// bindings and layout up to date.
func (g *Grid) refresh() error {
	mx, my := g.ScrollMax()
	x, y := math.Min(g.offX, mx), math.Min(g.offY, my)
	if x != g.offX || y != g.offY {
		trace.SpanFromContext(g.spanCtx).AddEvent(tracing.EventScrollClamped)
		return g.setOffset(x, y)
	}
	err := g.updateVisibility()
	g.layoutAll()
	return err
}

func (g *Grid) mainBox(v View, _ int) Rect {
	c, ok := g.pool.coordsOf(v)
	if !ok || c.col < 0 {
		return Offscreen
	}
	g.ensureGeometry()
	return Rect{
		X:      g.geom.edges[c.col] - g.offX,
		Y:      float64(c.row)*g.RowStep() - g.offY,
		Width:  g.columnWidth(c.col),
		Height: g.rowHeight,
	}
}

func (g *Grid) frozenColumnBox(v View, _ int) Rect {
	c, ok := g.pool.coordsOf(v)
	if !ok {
		return Offscreen
	}
	return Rect{
		X:      0,
		Y:      float64(c.row)*g.RowStep() - g.offY,
		Width:  g.columnWidth(-1),
		Height: g.rowHeight,
	}
}

func (g *Grid) frozenRowBox(_ View, i int) Rect {
	g.ensureGeometry()
	if i >= len(g.geom.edges) {
		return Offscreen
	}
	return Rect{
		X:      g.geom.edges[i] - g.offX,
		Y:      0,
		Width:  g.columnWidth(i),
		Height: g.headerHeight,
	}
}

func (g *Grid) cornerBox(_ View, _ int) Rect {
	return Rect{Width: g.columnWidth(-1), Height: g.headerHeight}
}
