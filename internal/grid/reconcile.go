package grid

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/tracing"
)

func changeAttrs(kind string, start, count int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(tracing.AttrChangeKind, kind),
		attribute.Int(tracing.AttrChangeStart, start),
		attribute.Int(tracing.AttrChangeCount, count),
	}
}

// columnsAdded shifts the pools of every column at or after start up by
// count, then rebuilds the header row and bindings.
func (g *Grid) columnsAdded(start, count int) error {
	if start < 0 || count < 0 {
		panic(fmt.Sprintf("grid: columns added at %d count %d", start, count))
	}
	return g.traced("columns_added", func() error {
		log.Debug(log.CatReconcile, "columns added", "start", start, "count", count)
		g.pool.shift(start, count)
		g.geom.invalidate()
		g.rebuildFrozenRow()
		return g.refresh()
	}, changeAttrs("add", start, count)...)
}

// columnsRemoved discards the pools of the removed columns and shifts the
// pools of every later column down by count.
func (g *Grid) columnsRemoved(start, count int) error {
	if start < 0 || count < 0 {
		panic(fmt.Sprintf("grid: columns removed at %d count %d", start, count))
	}
	return g.traced("columns_removed", func() error {
		log.Debug(log.CatReconcile, "columns removed", "start", start, "count", count)
		for i := 0; i < count; i++ {
			g.discardColumn(start+i, true)
		}
		g.pool.shift(start+count, -count)
		g.geom.invalidate()
		g.ensureGeometry()
		g.rebuildFrozenRow()
		return g.refresh()
	}, changeAttrs("remove", start, count)...)
}

// columnsReplaced discards the pools of the replaced columns without
// shifting anything. A negative start means the frozen column.
func (g *Grid) columnsReplaced(start, count int) error {
	if start < 0 || count < 1 {
		count = 1
	}
	return g.traced("columns_replaced", func() error {
		log.Debug(log.CatReconcile, "columns replaced", "start", start, "count", count)
		for i := 0; i < count; i++ {
			g.discardColumn(start+i, true)
		}
		if start < 0 {
			g.updateCorner()
			g.layoutPanels()
		}
		g.geom.invalidate()
		g.rebuildFrozenRow()
		return g.refresh()
	}, changeAttrs("replace", start, count)...)
}

// columnsMoved treats every index between from and to as replaced.
func (g *Grid) columnsMoved(from, to int) error {
	lo, hi := min(from, to), max(from, to)
	return g.columnsReplaced(lo, hi-lo+1)
}

// allColumnsReplaced drops every pool and panel child and starts over.
func (g *Grid) allColumnsReplaced() error {
	return g.traced("all_columns_replaced", func() error {
		log.Debug(log.CatReconcile, "all columns replaced", "columns", g.columnCount())
		for _, col := range g.pool.inventoryColumns() {
			g.discardColumn(col, false)
		}
		for _, p := range []*panel{g.main, g.frozenRow, g.frozenCol} {
			for _, v := range append([]View(nil), p.children...) {
				g.detach(p, v)
			}
		}
		g.geom.invalidate()
		g.rebuildFrozenRow()
		return g.refresh()
	}, attribute.Int(tracing.AttrGridColumns, g.columnCount()))
}

// rebindRowsFrom refreshes every bound coordinate at or after start. Views
// whose row no longer exists are unbound and parked off-screen.
func (g *Grid) rebindRowsFrom(start int) {
	n := g.rowCount()
	for _, col := range g.pool.columns() {
		for _, row := range g.pool.rowsOf(col) {
			if row < start {
				continue
			}
			v, _ := g.pool.lookup(col, row)
			if row >= n {
				g.unbind(v)
				g.host.SetBounds(v, Offscreen)
				continue
			}
			g.rebind(v, row)
		}
	}
}

func (g *Grid) rowsAdded(start, count int) error {
	return g.traced("rows_added", func() error {
		log.Debug(log.CatReconcile, "rows added", "start", start, "count", count, "rows", g.rowCount())
		g.rebindRowsFrom(start)
		return g.refresh()
	}, changeAttrs("add", start, count)...)
}

func (g *Grid) rowsRemoved(start, count int) error {
	return g.traced("rows_removed", func() error {
		log.Debug(log.CatReconcile, "rows removed", "start", start, "count", count, "rows", g.rowCount())
		g.rebindRowsFrom(start)
		return g.refresh()
	}, changeAttrs("remove", start, count)...)
}

// rowsReplaced refreshes the bound views of rows [start, start+count).
func (g *Grid) rowsReplaced(start, count int) error {
	return g.traced("rows_replaced", func() error {
		for _, col := range g.pool.columns() {
			for i := 0; i < count; i++ {
				if v, ok := g.pool.lookup(col, start+i); ok {
					g.rebind(v, start+i)
				}
			}
		}
		return nil
	}, changeAttrs("replace", start, count)...)
}

func (g *Grid) rowsMoved(from, to int) error {
	lo, hi := min(from, to), max(from, to)
	return g.rowsReplaced(lo, hi-lo+1)
}

// allRowsReplaced rebinds everything from the first row and clamps both axes.
func (g *Grid) allRowsReplaced() error {
	return g.traced("all_rows_replaced", func() error {
		log.Debug(log.CatReconcile, "all rows replaced", "rows", g.rowCount())
		g.rebindRowsFrom(0)
		return g.refresh()
	}, attribute.Int(tracing.AttrGridRows, g.rowCount()))
}

func (g *Grid) columnTemplateChanged(col int) error {
	return g.traced("column_template_changed", func() error {
		g.discardColumn(col, true)
		g.geom.invalidate()
		g.rebuildFrozenRow()
		return g.refresh()
	}, attribute.Int(tracing.AttrColumnIndex, col))
}

func (g *Grid) columnWidthChanged(col int) error {
	return g.traced("column_width_changed", func() error {
		g.geom.invalidate()
		g.ensureGeometry()
		if col < 0 {
			g.layoutPanels()
		}
		return g.refresh()
	}, attribute.Int(tracing.AttrColumnIndex, col))
}

func (g *Grid) columnHeaderChanged(col int) error {
	return g.traced("column_header_changed", func() error {
		if col < 0 {
			g.updateCorner()
			g.corner.layoutAll(g.host)
			return nil
		}
		g.rebuildFrozenRow()
		g.frozenRow.layoutAll(g.host)
		return nil
	}, attribute.Int(tracing.AttrColumnIndex, col))
}

func (g *Grid) rowHeightChanged() error {
	return g.traced("row_height_changed", g.refresh)
}

func (g *Grid) rowSpacingChanged() error {
	g.layoutPanels()
	return g.rowHeightChanged()
}

func (g *Grid) columnSpacingChanged() error {
	return g.traced("column_spacing_changed", func() error {
		g.geom.invalidate()
		g.ensureGeometry()
		g.layoutPanels()
		return g.refresh()
	})
}

func (g *Grid) headerHeightChanged() error {
	return g.traced("header_height_changed", func() error {
		g.layoutPanels()
		return g.refresh()
	})
}

func (g *Grid) frozenColumnReplaced() error {
	return g.columnsReplaced(-1, 1)
}

func (g *Grid) rowsChanged(ch Change) error {
	switch ch.Kind {
	case ChangeAdd:
		return g.rowsAdded(ch.Start, ch.Count)
	case ChangeRemove:
		return g.rowsRemoved(ch.Start, ch.Count)
	case ChangeReplace:
		return g.rowsReplaced(ch.Start, ch.Count)
	case ChangeMove:
		return g.rowsMoved(ch.Start, ch.To)
	default:
		return g.allRowsReplaced()
	}
}

func (g *Grid) columnsChanged(ch Change) error {
	g.syncColumnListeners()
	switch ch.Kind {
	case ChangeAdd:
		return g.columnsAdded(ch.Start, ch.Count)
	case ChangeRemove:
		return g.columnsRemoved(ch.Start, ch.Count)
	case ChangeReplace:
		return g.columnsReplaced(ch.Start, ch.Count)
	case ChangeMove:
		return g.columnsMoved(ch.Start, ch.To)
	default:
		return g.allColumnsReplaced()
	}
}

// columnChanged routes a property change of c to its handler, once for every
// index c occupies.
func (g *Grid) columnChanged(c *Column, attr ColumnAttr) error {
	var at []int
	if g.columns != nil {
		for i, x := range g.columns.Items() {
			if x == c {
				at = append(at, i)
			}
		}
	}
	if len(at) == 0 {
		if c != g.frozen {
			return nil
		}
		at = []int{-1}
	}

	for _, col := range at {
		var err error
		switch attr {
		case ColumnWidth:
			err = g.columnWidthChanged(col)
		case ColumnTemplate:
			err = g.columnTemplateChanged(col)
		case ColumnHeader:
			err = g.columnHeaderChanged(col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// syncColumnListeners subscribes to every current column and drops the
// subscriptions of columns that are gone.
func (g *Grid) syncColumnListeners() {
	live := make(map[*Column]bool)
	if g.columns != nil {
		for _, c := range g.columns.Items() {
			live[c] = true
			if _, ok := g.columnSubs[c]; !ok {
				c := c
				g.columnSubs[c] = c.Subscribe(func(attr ColumnAttr) error {
					return g.columnChanged(c, attr)
				})
			}
		}
	}
	for c, unsub := range g.columnSubs {
		if !live[c] {
			unsub()
			delete(g.columnSubs, c)
		}
	}
}
