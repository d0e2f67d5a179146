package grid

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/datagrid/internal/log"
)

// Attribute names a grid property whose change needs reconciling.
type Attribute int

const (
	AttrRowHeight Attribute = iota
	AttrRowSpacing
	AttrColumnSpacing
	AttrHeaderHeight
	AttrRows
	AttrColumns
	AttrFrozenColumn
	AttrSelectionMode
	AttrSelectedRow
)

func (a Attribute) String() string {
	switch a {
	case AttrRowHeight:
		return "row_height"
	case AttrRowSpacing:
		return "row_spacing"
	case AttrColumnSpacing:
		return "column_spacing"
	case AttrHeaderHeight:
		return "header_height"
	case AttrRows:
		return "rows"
	case AttrColumns:
		return "columns"
	case AttrFrozenColumn:
		return "frozen_column"
	case AttrSelectionMode:
		return "selection_mode"
	case AttrSelectedRow:
		return "selected_row"
	default:
		return fmt.Sprintf("attribute(%d)", int(a))
	}
}

func (g *Grid) dispatchTable() map[Attribute]func() error {
	return map[Attribute]func() error{
		AttrRowHeight:     g.rowHeightChanged,
		AttrRowSpacing:    g.rowSpacingChanged,
		AttrColumnSpacing: g.columnSpacingChanged,
		AttrHeaderHeight:  g.headerHeightChanged,
		AttrRows:          g.allRowsReplaced,
		AttrColumns:       g.allColumnsReplaced,
		AttrFrozenColumn:  g.frozenColumnReplaced,
		AttrSelectionMode: func() error {
			g.applySelectionAll()
			return nil
		},
		AttrSelectedRow: func() error {
			g.applySelectionRow(g.selected)
			return nil
		},
	}
}

// Notify runs the handler for attr. Hosts call it after changing something
// the grid cannot observe, such as the items behind a non-observable Rows.
func (g *Grid) Notify(attr Attribute) error {
	h, ok := g.handlers[attr]
	if !ok {
		panic(fmt.Sprintf("grid: no handler for %s", attr))
	}
	return h()
}

// SetRowHeight changes the height of every row.
func (g *Grid) SetRowHeight(h float64) error {
	if h == g.rowHeight {
		return nil
	}
	g.rowHeight = h
	return g.Notify(AttrRowHeight)
}

// SetRowSpacing changes the gap below every row and below the header.
func (g *Grid) SetRowSpacing(s float64) error {
	if s == g.rowSpacing {
		return nil
	}
	g.rowSpacing = s
	return g.Notify(AttrRowSpacing)
}

// SetColumnSpacing changes the gap after every column.
func (g *Grid) SetColumnSpacing(s float64) error {
	if s == g.columnSpacing {
		return nil
	}
	g.columnSpacing = s
	return g.Notify(AttrColumnSpacing)
}

// SetHeaderHeight changes the height of the frozen row.
func (g *Grid) SetHeaderHeight(h float64) error {
	if h == g.headerHeight {
		return nil
	}
	g.headerHeight = h
	return g.Notify(AttrHeaderHeight)
}

// SetSelectionMode turns row selection on or off.
func (g *Grid) SetSelectionMode(m SelectionMode) error {
	if m == g.selectionMode {
		return nil
	}
	g.selectionMode = m
	return g.Notify(AttrSelectionMode)
}

// SetSelectionColors changes the highlight colors and repaints bound views.
func (g *Grid) SetSelectionColors(selected, unselected lipgloss.TerminalColor) error {
	if selected == nil {
		selected = lipgloss.NoColor{}
	}
	if unselected == nil {
		unselected = lipgloss.NoColor{}
	}
	g.selectedBg, g.unselectedBg = selected, unselected
	return g.Notify(AttrSelectionMode)
}

// SetRows replaces the row sequence. Observable rows are followed for
// changes until they are replaced in turn.
func (g *Grid) SetRows(rows Rows) error {
	if g.rowsUnsub != nil {
		g.rowsUnsub()
		g.rowsUnsub = nil
	}
	g.rows = rows
	if obs, ok := rows.(Observable); ok {
		g.rowsUnsub = obs.Subscribe(g.rowsChanged)
	}
	log.Debug(log.CatGrid, "rows set", "rows", g.rowCount())
	return g.Notify(AttrRows)
}

// SetColumns replaces the column sequence.
func (g *Grid) SetColumns(cols *Collection[*Column]) error {
	if g.colsUnsub != nil {
		g.colsUnsub()
		g.colsUnsub = nil
	}
	g.columns = cols
	if cols != nil {
		g.colsUnsub = cols.Subscribe(g.columnsChanged)
	}
	g.syncColumnListeners()
	log.Debug(log.CatGrid, "columns set", "columns", g.columnCount())
	return g.Notify(AttrColumns)
}

// SetFrozenColumn replaces the frozen column. Nil removes it.
func (g *Grid) SetFrozenColumn(c *Column) error {
	if c == g.frozen {
		return nil
	}
	if g.frozenSub != nil {
		g.frozenSub()
		g.frozenSub = nil
	}
	g.frozen = c
	if c != nil {
		g.frozenSub = c.Subscribe(func(attr ColumnAttr) error {
			return g.columnChanged(c, attr)
		})
	}
	return g.Notify(AttrFrozenColumn)
}
