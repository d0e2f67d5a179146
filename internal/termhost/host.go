package termhost

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/datagrid/internal/cachemanager"
	"github.com/zjrosen/datagrid/internal/grid"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/ui/overlay"
)

// Drawable is a view the host knows how to render.
type Drawable interface {
	grid.View
	Draw(width, height int) string
}

type dataSetter interface {
	SetData(data any)
}

// compositeOrder paints the scrolling panel first so the frozen panels
// cover whatever scrolls beneath them.
var compositeOrder = []grid.PanelID{
	grid.PanelMain,
	grid.PanelFrozenColumn,
	grid.PanelFrozenRow,
	grid.PanelCorner,
}

const renderCacheTTL = time.Minute

type hostPanel struct {
	bounds   grid.Rect
	children []grid.View
}

// Stats describes the host's current view inventory.
type Stats struct {
	Attached     int
	Placeholders int
	Cache        cachemanager.Stats
}

// Host implements grid.Host for a character-cell terminal. Grid units are
// cells: x is a column and y a line.
type Host struct {
	panels       map[grid.PanelID]*hostPanel
	bounds       map[grid.View]grid.Rect
	placeholders int
	cells        *cachemanager.ReadThroughCache[string, string, cellInput]
}

var _ grid.Host = (*Host)(nil)

// Option configures a Host.
type Option func(*hostOptions)

type hostOptions struct {
	noCache bool
}

// WithoutRenderCache renders every label on every frame.
func WithoutRenderCache() Option {
	return func(o *hostOptions) { o.noCache = true }
}

// New returns a host with four empty panels.
func New(opts ...Option) *Host {
	var o hostOptions
	for _, opt := range opts {
		opt(&o)
	}

	h := &Host{
		panels: make(map[grid.PanelID]*hostPanel, len(compositeOrder)),
		bounds: make(map[grid.View]grid.Rect),
	}
	for _, p := range compositeOrder {
		h.panels[p] = &hostPanel{}
	}

	cache := cachemanager.NewInMemoryCacheManager[string, string](
		"cells", renderCacheTTL, cachemanager.DefaultCleanupInterval)
	h.cells = cachemanager.NewReadThroughCache[string, string, cellInput](
		cache,
		cellInput.key,
		func(_ context.Context, c cellInput) (string, error) { return renderCell(c), nil },
		renderCacheTTL,
		o.noCache,
	)
	return h
}

func (h *Host) Attach(p grid.PanelID, v grid.View) {
	hp := h.panels[p]
	hp.children = append(hp.children, v)
}

func (h *Host) Detach(p grid.PanelID, v grid.View) {
	hp := h.panels[p]
	for i, c := range hp.children {
		if c == v {
			hp.children = append(hp.children[:i], hp.children[i+1:]...)
			break
		}
	}
	delete(h.bounds, v)
}

func (h *Host) SetBounds(v grid.View, r grid.Rect) {
	h.bounds[v] = r
}

func (h *Host) SetDataContext(v grid.View, data any) {
	if s, ok := v.(dataSetter); ok {
		s.SetData(data)
		return
	}
	log.Warn(log.CatUI, "view cannot take a data context", "view", v)
}

func (h *Host) SetPanelBounds(p grid.PanelID, r grid.Rect) {
	h.panels[p].bounds = r
}

func (h *Host) NewPlaceholder() grid.View {
	h.placeholders++
	return &Box{}
}

// Bounds returns the last rect the grid gave v.
func (h *Host) Bounds(v grid.View) (grid.Rect, bool) {
	r, ok := h.bounds[v]
	return r, ok
}

// PanelBounds returns the rect of panel p within the grid.
func (h *Host) PanelBounds(p grid.PanelID) grid.Rect {
	return h.panels[p].bounds
}

// Children returns the views attached to panel p in attach order.
func (h *Host) Children(p grid.PanelID) []grid.View {
	return append([]grid.View(nil), h.panels[p].children...)
}

// Stats reports the attached view count and render cache counters.
func (h *Host) Stats() Stats {
	n := 0
	for _, p := range h.panels {
		n += len(p.children)
	}
	return Stats{Attached: n, Placeholders: h.placeholders, Cache: h.cells.Stats()}
}

// FlushCache drops every cached cell rendering, e.g. after a theme change.
func (h *Host) FlushCache() {
	_ = h.cells.Flush(context.Background())
}

// Render composites all panels into a width x height frame.
func (h *Host) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	canvas := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range canvas {
		canvas[i] = blank
	}

	for _, id := range compositeOrder {
		p := h.panels[id]
		clip := cellRect(p.bounds).intersect(cellBox{x: 0, y: 0, w: width, h: height})
		if clip.empty() {
			continue
		}
		for _, v := range p.children {
			h.paint(canvas, v, p.bounds, clip)
		}
	}
	return strings.Join(canvas, "\n")
}

func (h *Host) paint(canvas []string, v grid.View, panel grid.Rect, clip cellBox) {
	d, ok := v.(Drawable)
	if !ok {
		return
	}
	r, ok := h.bounds[v]
	if !ok {
		return
	}
	box := cellRect(grid.Rect{X: panel.X + r.X, Y: panel.Y + r.Y, Width: r.Width, Height: r.Height})
	if box.empty() {
		return
	}
	vis := box.intersect(clip)
	if vis.empty() {
		return
	}

	lines := strings.Split(h.draw(d, box.w, box.h), "\n")
	cutLeft := vis.x - box.x
	for y := vis.y; y < vis.y+vis.h; y++ {
		i := y - box.y
		if i >= len(lines) {
			break
		}
		line := lines[i]
		if cutLeft > 0 {
			line = ansi.TruncateLeft(line, cutLeft, "")
		}
		line = truncate.String(line, uint(vis.w))
		canvas[y] = overlay.Splice(canvas[y], line, vis.x)
	}
}

func (h *Host) draw(d Drawable, w, ht int) string {
	if l, ok := d.(*Label); ok {
		s, err := h.cells.Get(context.Background(), l.input(w, ht))
		if err == nil {
			return s
		}
	}
	return d.Draw(w, ht)
}

// cellBox is a rect snapped to whole cells.
type cellBox struct {
	x, y, w, h int
}

// cellRect snaps r so adjacent rects stay adjacent: edges are floored and
// sizes are the distance between floored edges.
func cellRect(r grid.Rect) cellBox {
	x0, y0 := math.Floor(r.X), math.Floor(r.Y)
	x1, y1 := math.Floor(r.X+r.Width), math.Floor(r.Y+r.Height)
	return cellBox{x: int(x0), y: int(y0), w: int(x1 - x0), h: int(y1 - y0)}
}

func (b cellBox) empty() bool { return b.w <= 0 || b.h <= 0 }

func (b cellBox) intersect(o cellBox) cellBox {
	x0, y0 := max(b.x, o.x), max(b.y, o.y)
	x1, y1 := min(b.x+b.w, o.x+o.w), min(b.y+b.h, o.y+o.h)
	return cellBox{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}
