package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder draws content inside a rounded border with the title
// set into the top edge: ╭─ Title ─────╮. width and height include the border.
func RenderWithTitleBorder(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(HeaderForegroundColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	body := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).MaxHeight(innerHeight).Render(content)
	lines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(topBorder(title, innerWidth, borderStyle, titleStyle))
	for i := 0; i < innerHeight; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if lipgloss.Width(line) > innerWidth {
			line = TruncateString(line, innerWidth)
		}
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString(PadRight(line, innerWidth))
		b.WriteString(borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

func topBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " + title + " " needs at least four cells to show anything.
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	title = TruncateString(title, innerWidth-4)
	rest := max(innerWidth-3-lipgloss.Width(title), 0)
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
