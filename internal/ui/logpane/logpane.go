// Package logpane shows recent debug log entries over the grid. Entries
// arrive from the log broker and are kept in a bounded buffer owned by the
// pane.
package logpane

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/ui/overlay"
	"github.com/zjrosen/datagrid/internal/ui/styles"
)

const (
	// DefaultCapacity is how many entries a pane keeps.
	DefaultCapacity = 500

	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 160
	boxMinWidth       = 30
	// header, divider, footer divider, footer and two border lines
	chromeHeight = 6
)

// Model is the log pane state.
type Model struct {
	entries  []string
	capacity int
	minLevel log.Level
	visible  bool
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden pane that keeps the last capacity entries.
func New(capacity int) Model {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return Model{capacity: capacity, minLevel: log.LevelDebug}
}

// Append adds a formatted log line, dropping the oldest when full.
func (m *Model) Append(entry string) {
	entry = strings.TrimSuffix(entry, "\n")
	if entry == "" {
		return
	}
	m.entries = append(m.entries, entry)
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append(m.entries[:0], m.entries[over:]...)
	}
	if m.visible {
		m.refresh()
	}
}

// Len is the number of buffered entries regardless of the level filter.
func (m Model) Len() int { return len(m.entries) }

// MinLevel is the lowest level shown.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Visible reports whether the pane is shown.
func (m Model) Visible() bool { return m.visible }

// Toggle shows or hides the pane.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
}

// Hide closes the pane.
func (m *Model) Hide() { m.visible = false }

// SetSize records the screen size the pane is centered in.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	if m.visible {
		m.refresh()
	}
}

// Update handles keys while the pane is visible. Esc closes it.
func (m Model) Update(msg tea.KeyMsg) Model {
	if !m.visible {
		return m
	}
	switch msg.String() {
	case "esc":
		m.visible = false
	case "c":
		m.entries = m.entries[:0]
		m.refresh()
	case "d":
		m.setLevel(log.LevelDebug)
	case "i":
		m.setLevel(log.LevelInfo)
	case "w":
		m.setLevel(log.LevelWarn)
	case "e":
		m.setLevel(log.LevelError)
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()
	}
	return m
}

func (m *Model) setLevel(l log.Level) {
	m.minLevel = l
	m.refresh()
}

// Filtered returns the entries at or above the current level, oldest first.
func (m Model) Filtered() []string {
	var out []string
	for _, e := range m.entries {
		if lvl, ok := levelOf(e); !ok || lvl >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

// levelOf reads the [LEVEL] tag written by the log package.
func levelOf(entry string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l, true
		}
	}
	return 0, false
}

func (m *Model) refresh() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	h := min(viewportMaxHeight, m.height-chromeHeight)
	h = max(h, viewportMinHeight)
	w := m.contentWidth()

	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(m.content(w))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	filtered := m.Filtered()
	if len(filtered) == 0 {
		empty := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true)
		return empty.Render("No logs to display (start with --debug)")
	}
	lines := make([]string, len(filtered))
	for i, e := range filtered {
		lines[i] = colorize(e, width)
	}
	return strings.Join(lines, "\n")
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, styles.Ellipsis)
	}
	color := lipgloss.TerminalColor(styles.TextPrimaryColor)
	if lvl, ok := levelOf(entry); ok {
		switch lvl {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.TextSecondaryColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// View renders the pane box, or nothing when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.HeaderForegroundColor).PaddingLeft(1)
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", w))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Logs"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.footer())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(w)
	return box.Render(b.String())
}

func (m Model) footer() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		key   string
		level log.Level
		label string
	}{
		{"d", log.LevelDebug, "Debug"},
		{"i", log.LevelInfo, "Info"},
		{"w", log.LevelWarn, "Warn"},
		{"e", log.LevelError, "Error"},
	} {
		s := hint
		if f.level == m.minLevel {
			s = active
		}
		parts = append(parts, s.Render("["+f.key+"] "+f.label))
	}
	parts = append(parts, hint.Render("[esc] Close"))
	return strings.Join(parts, "  ")
}

// Overlay draws the pane centered over background.
func (m Model) Overlay(background string) string {
	if !m.visible {
		return background
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}
