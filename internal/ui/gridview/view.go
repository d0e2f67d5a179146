package gridview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/datagrid/internal/ui/styles"
)

var (
	statusOKStyle  = lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	statusErrStyle = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Bold(true)
)

// View renders the grid with the details pane and status bar, then the log
// pane and help overlays on top.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	gw, gh := m.gridSize()
	body := zone.Mark(gridZone, m.host.Render(gw, gh))
	if m.showDetails {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetails(m.width-gw, gh))
	}
	if m.showStatus {
		body += "\n" + m.renderStatus()
	}
	body = m.logs.Overlay(body)
	if m.showHelp {
		body = m.overlay.Overlay(body)
	}
	return zone.Scan(body)
}

// renderStatus shows the source, position and selection on the left and
// either the last status message or the short help on the right.
func (m Model) renderStatus() string {
	rows := m.table.Rows.Len()
	pos := "empty"
	if first, _, ok := m.grid.VisibleRows(); ok {
		// VisibleRows includes a row that only touches the bottom edge.
		_, y := m.grid.ScrollOffset()
		_, vh := m.grid.MainViewport()
		last := min(max(int((y+vh)/m.grid.RowStep()), first+1), rows)
		pos = fmt.Sprintf("%d-%d of %d", first+1, last, rows)
	}
	left := m.source + "  " + pos
	if sel := m.grid.SelectedRowIndex(); sel >= 0 && sel < rows {
		left += fmt.Sprintf("  row %d (%s)", sel+1, m.table.Rows.At(sel).ID)
	}

	var right string
	switch {
	case m.status != "" && m.statusErr:
		right = statusErrStyle.Render(m.status)
	case m.status != "":
		right = statusOKStyle.Render(m.status)
	default:
		right = m.help.View(m.keys)
	}

	inner := max(m.width-2, 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	line := left + strings.Repeat(" ", max(gap, 1)) + right
	return styles.StatusBarStyle.Render(ansi.Truncate(line, inner, styles.Ellipsis))
}
