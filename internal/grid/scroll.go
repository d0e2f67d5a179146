package grid

import (
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/datagrid/internal/tracing"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetScrollOffset moves the viewport over the content. Offsets are clamped to
// [0, ScrollMax]; setting the current offset again does nothing.
func (g *Grid) SetScrollOffset(x, y float64) error {
	mx, my := g.ScrollMax()
	return g.setOffset(clamp(x, 0, mx), clamp(y, 0, my))
}

// ScrollBy moves the viewport relative to the current offset.
func (g *Grid) ScrollBy(dx, dy float64) error {
	return g.SetScrollOffset(g.offX+dx, g.offY+dy)
}

func (g *Grid) setOffset(x, y float64) error {
	if x == g.offX && y == g.offY {
		return nil
	}
	return g.traced("scroll", func() error {
		g.offX, g.offY = x, y
		err := g.updateVisibility()
		g.main.layoutAll(g.host)
		g.frozenRow.layoutAll(g.host)
		g.frozenCol.layoutAll(g.host)
		return err
	}, attribute.Float64(tracing.AttrScrollX, x), attribute.Float64(tracing.AttrScrollY, y))
}

// HandleTap selects or clears the row under a point given in grid
// coordinates. It reports false when the point misses the content or
// selection is off.
func (g *Grid) HandleTap(x, y float64) bool {
	if g.selectionMode != SelectionRow {
		return false
	}
	fcw, frh := g.frozenExtent()
	if y < frh {
		return false
	}

	cx := x - fcw + g.offX
	if cx < 0 || cx > g.ContentWidth() {
		return false
	}

	step := g.RowStep()
	if step <= 0 {
		return false
	}
	row := int(math.Floor((y - frh + g.offY) / step))
	if row < 0 || row >= g.rowCount() {
		return false
	}

	if row == g.selected {
		g.SetSelectedRowIndex(-1)
	} else {
		g.SetSelectedRowIndex(row)
	}
	return true
}

// RowAt returns the row under a grid-relative y coordinate.
func (g *Grid) RowAt(y float64) (int, bool) {
	_, frh := g.frozenExtent()
	step := g.RowStep()
	if y < frh || step <= 0 {
		return -1, false
	}
	row := int(math.Floor((y - frh + g.offY) / step))
	if row < 0 || row >= g.rowCount() {
		return -1, false
	}
	return row, true
}

// ColumnAt returns the regular column under a grid-relative x coordinate,
// or -1 with ok set when x falls in the frozen column.
func (g *Grid) ColumnAt(x float64) (int, bool) {
	fcw, _ := g.frozenExtent()
	if x < 0 {
		return -1, false
	}
	if x < fcw {
		return -1, g.frozen != nil
	}
	g.ensureGeometry()
	cx := x - fcw + g.offX
	for col := len(g.geom.edges) - 1; col >= 0; col-- {
		if cx >= g.geom.edges[col] {
			if cx < g.geom.edges[col]+g.advance(col) {
				return col, true
			}
			return -1, false
		}
	}
	return -1, false
}
