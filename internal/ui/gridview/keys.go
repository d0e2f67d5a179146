package gridview

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/datagrid/internal/config"
	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/termhost"
)

// columnStep is how much ] and [ change a column's width.
const columnStep = 1

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.logs.Visible() {
		switch {
		case key.Matches(msg, m.keys.Logs):
			m.logs.Hide()
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		default:
			m.logs = m.logs.Update(msg)
		}
		return m, nil
	}

	m.setStatus("")

	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		err = m.grid.ScrollBy(0, -m.grid.RowStep())
	case key.Matches(msg, m.keys.Down):
		err = m.grid.ScrollBy(0, m.grid.RowStep())
	case key.Matches(msg, m.keys.Left):
		err = m.scrollColumns(-1)
	case key.Matches(msg, m.keys.Right):
		err = m.scrollColumns(1)
	case key.Matches(msg, m.keys.PageUp):
		err = m.grid.ScrollBy(0, -m.pageHeight())
	case key.Matches(msg, m.keys.PageDown):
		err = m.grid.ScrollBy(0, m.pageHeight())
	case key.Matches(msg, m.keys.Home):
		x, _ := m.grid.ScrollOffset()
		err = m.grid.SetScrollOffset(x, 0)
	case key.Matches(msg, m.keys.End):
		x, _ := m.grid.ScrollOffset()
		_, maxY := m.grid.ScrollMax()
		err = m.grid.SetScrollOffset(x, maxY)

	case key.Matches(msg, m.keys.Select):
		m.toggleTopRow()
	case key.Matches(msg, m.keys.SelectNext):
		err = m.moveSelection(1)
	case key.Matches(msg, m.keys.SelectPrev):
		err = m.moveSelection(-1)

	case key.Matches(msg, m.keys.Widen):
		err = m.resizeColumn(columnStep)
	case key.Matches(msg, m.keys.Narrow):
		err = m.resizeColumn(-columnStep)
	case key.Matches(msg, m.keys.ToggleFrozen):
		m.pinned = !m.pinned
		err = m.pinFrozen()
	case key.Matches(msg, m.keys.CycleTemplate):
		err = m.cycleTemplate()

	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		m.resize()
	case key.Matches(msg, m.keys.Reload):
		m.setStatus("reloading " + m.source)
		return m, m.reloadCmd()
	case key.Matches(msg, m.keys.Logs):
		m.logs.Toggle()
	case key.Matches(msg, m.keys.SaveLayout):
		if err := m.saveLayout(); err != nil {
			m.setError("saving layout", err)
		} else {
			m.setStatus("layout saved to " + m.path)
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	if err != nil {
		m.setError("grid update failed", err)
	}
	return m, nil
}

func (m Model) reloadCmd() tea.Cmd {
	reload, ctx := m.reload, m.ctx
	return func() tea.Msg {
		reload(ctx)
		return nil
	}
}

func (m Model) pageHeight() float64 {
	_, h := m.grid.MainViewport()
	return max(h, m.grid.RowStep())
}

// scrollColumns scrolls horizontally so the next or previous column edge
// lines up with the left of the viewport.
func (m Model) scrollColumns(delta int) error {
	n := m.grid.Columns().Len()
	if n == 0 {
		return nil
	}
	x, y := m.grid.ScrollOffset()
	if delta > 0 {
		for col := 0; col < n; col++ {
			if e := m.grid.Edge(col); e > x {
				return m.grid.SetScrollOffset(e, y)
			}
		}
		maxX, _ := m.grid.ScrollMax()
		return m.grid.SetScrollOffset(maxX, y)
	}
	for col := n - 1; col >= 0; col-- {
		if e := m.grid.Edge(col); e < x {
			return m.grid.SetScrollOffset(e, y)
		}
	}
	return m.grid.SetScrollOffset(0, y)
}

// toggleTopRow selects the first visible row, or clears it when it is
// already selected.
func (m Model) toggleTopRow() {
	first, _, ok := m.grid.VisibleRows()
	if !ok {
		return
	}
	if m.grid.SelectedRowIndex() == first {
		m.grid.SetSelectedRowIndex(-1)
		return
	}
	m.grid.SetSelectedRowIndex(first)
}

// moveSelection moves the selection by delta rows and scrolls it into view.
// Without a selection the first visible row is selected.
func (m Model) moveSelection(delta int) error {
	n := m.table.Rows.Len()
	if n == 0 {
		return nil
	}
	row := m.grid.SelectedRowIndex()
	if row < 0 {
		first, _, ok := m.grid.VisibleRows()
		if !ok {
			return nil
		}
		row = first
	} else {
		row = min(max(row+delta, 0), n-1)
	}
	m.grid.SetSelectedRowIndex(row)
	return m.scrollToRow(row)
}

func (m Model) scrollToRow(row int) error {
	x, y := m.grid.ScrollOffset()
	_, vh := m.grid.MainViewport()
	top := float64(row) * m.grid.RowStep()
	bottom := top + m.grid.RowHeight()
	switch {
	case top < y:
		return m.grid.SetScrollOffset(x, top)
	case bottom > y+vh:
		return m.grid.SetScrollOffset(x, bottom-vh)
	}
	return nil
}

// firstVisibleColumn returns the leftmost regular column in view.
func (m Model) firstVisibleColumn() (int, bool) {
	first, _, ok := m.grid.VisibleColumns()
	return first, ok
}

func (m Model) resizeColumn(delta int) error {
	col, ok := m.firstVisibleColumn()
	if !ok {
		return nil
	}
	c := m.grid.Columns().At(col)
	w := max(c.Width()+float64(delta), datasource.MinColumnWidth)
	log.Debug(log.CatUI, "column resized", "column", m.layouts[col].field, "width", w)
	return c.SetWidth(w)
}

// cycleTemplate switches the first visible column between plain and
// upper-cased text.
func (m Model) cycleTemplate() error {
	col, ok := m.firstVisibleColumn()
	if !ok {
		return nil
	}
	m.layouts[col].upper = !m.layouts[col].upper
	return m.grid.Columns().At(col).SetTemplate(m.layouts[col].template(termhost.KindCell))
}

// saveLayout writes the current columns and frozen column to the config file.
func (m Model) saveLayout() error {
	if m.path == "" {
		return errors.New("no config file")
	}
	cols := make([]config.ColumnConfig, len(m.layouts))
	for i, l := range m.layouts {
		cols[i] = l.config(m.grid.Columns().At(i).Width())
	}
	if err := config.SaveColumns(m.path, cols); err != nil {
		return fmt.Errorf("columns: %w", err)
	}

	frozen := m.cfg.FrozenColumn
	frozen.Enabled = m.pinned
	frozen.Field = m.frozenLayout.field
	if frozen.Width > 0 {
		frozen.Width = int(m.frozen.Width())
	}
	if err := config.SaveFrozenColumn(m.path, frozen); err != nil {
		return fmt.Errorf("frozen column: %w", err)
	}
	log.Info(log.CatConfig, "layout saved", "path", m.path, "columns", len(cols))
	return nil
}
