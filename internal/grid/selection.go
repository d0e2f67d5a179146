package grid

import "github.com/zjrosen/datagrid/internal/log"

// applySelection paints v for its row. Only row mode highlights, and only
// views implementing Highlighter can show it.
func (g *Grid) applySelection(v View, row int) {
	if g.selectionMode != SelectionRow {
		return
	}
	h, ok := v.(Highlighter)
	if !ok {
		return
	}
	if row == g.selected {
		h.SetBackground(g.selectedBg)
	} else {
		h.SetBackground(g.unselectedBg)
	}
}

// applySelectionRow re-evaluates every bound view of row.
func (g *Grid) applySelectionRow(row int) {
	if row < 0 {
		return
	}
	for _, col := range g.pool.columns() {
		if v, ok := g.pool.lookup(col, row); ok {
			g.applySelection(v, row)
		}
	}
}

// applySelectionAll repaints every bound view. Leaving row mode clears the
// highlight so no view keeps a stale selected background.
func (g *Grid) applySelectionAll() {
	for v, c := range g.pool.viewToCoords {
		if g.selectionMode == SelectionRow {
			g.applySelection(v, c.row)
			continue
		}
		if h, ok := v.(Highlighter); ok {
			h.SetBackground(g.unselectedBg)
		}
	}
}

// SetSelectedRowIndex selects row i, or clears the selection for -1.
func (g *Grid) SetSelectedRowIndex(i int) {
	if i < 0 {
		i = -1
	}
	if i == g.selected {
		return
	}
	prev := g.selected
	g.selected = i
	log.Debug(log.CatGrid, "selection changed", "prev", prev, "cur", i)

	g.applySelectionRow(prev)
	if err := g.Notify(AttrSelectedRow); err != nil {
		log.ErrorErr(log.CatGrid, "selection handler failed", err)
	}
	if g.onSelect != nil {
		g.onSelect(prev, i)
	}
}
