package gridview

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const gridZone = "datagrid-grid"

// wheelRows is how many rows one wheel notch scrolls.
const wheelRows = 3

// handleMouse scrolls on the wheel and selects on left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	var err error
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		err = m.grid.ScrollBy(0, -wheelRows*m.grid.RowStep())
	case tea.MouseButtonWheelDown:
		err = m.grid.ScrollBy(0, wheelRows*m.grid.RowStep())
	case tea.MouseButtonWheelLeft:
		err = m.scrollColumns(-1)
	case tea.MouseButtonWheelRight:
		err = m.scrollColumns(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionRelease {
			if x, y, ok := m.gridPoint(msg); ok {
				m.grid.HandleTap(float64(x), float64(y))
			}
		}
	}
	if err != nil {
		m.setError("scroll failed", err)
	}
	return m, nil
}

// gridPoint converts a mouse position to grid cell coordinates. Before the
// first frame is scanned the grid is assumed at the top left.
func (m Model) gridPoint(msg tea.MouseMsg) (x, y int, ok bool) {
	if z := zone.Get(gridZone); z != nil && !z.IsZero() {
		if !z.InBounds(msg) {
			return 0, 0, false
		}
		return msg.X - z.StartX, msg.Y - z.StartY, true
	}
	w, h := m.gridSize()
	if msg.X < 0 || msg.Y < 0 || msg.X >= w || msg.Y >= h {
		return 0, 0, false
	}
	return msg.X, msg.Y, true
}
