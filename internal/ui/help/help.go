// Package help draws the keybinding overlay of the grid view.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/datagrid/internal/keys"
	"github.com/zjrosen/datagrid/internal/ui/overlay"
	"github.com/zjrosen/datagrid/internal/ui/styles"
)

const (
	title    = "Keybindings"
	footer   = "Press ? or Esc to close"
	colGap   = 4
	keyGap   = 2
	boxInset = 2
)

// Model holds the overlay state. It is a value; SetSize returns a copy.
type Model struct {
	groups []keys.Group
	width  int
	height int
}

// New creates an overlay for the default bindings.
func New() Model {
	return NewWithKeys(keys.DefaultKeyMap())
}

// NewWithKeys creates an overlay for km. Disabled bindings are left out.
func NewWithKeys(km keys.KeyMap) Model {
	var groups []keys.Group
	for _, g := range km.Groups() {
		var enabled []key.Binding
		for _, b := range g.Bindings {
			if b.Enabled() {
				enabled = append(enabled, b)
			}
		}
		if len(enabled) > 0 {
			groups = append(groups, keys.Group{Title: g.Title, Bindings: enabled})
		}
	}
	return Model{groups: groups}
}

// SetSize sets the screen the overlay is centered in.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	return m
}

// View renders the box centered on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// Overlay renders the box centered over background.
func (m Model) Overlay(background string) string {
	if background == "" {
		return m.View()
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.box(), background)
}

func (m Model) box() string {
	section := lipgloss.NewStyle().Bold(true).Foreground(styles.HeaderForegroundColor)

	cols := make([]string, len(m.groups))
	for i, g := range m.groups {
		col := section.Render(g.Title) + "\n" + renderGroup(g.Bindings)
		if i < len(m.groups)-1 {
			col = lipgloss.NewStyle().MarginRight(colGap).Render(col)
		}
		cols[i] = col
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	inner := max(lipgloss.Width(body), ansi.StringWidth(footer)) + 2*boxInset

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.HeaderForegroundColor).PaddingLeft(boxInset).Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")
	pad := lipgloss.NewStyle().Padding(0, boxInset)
	b.WriteString(pad.Render(body))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(styles.HintStyle.Render(footer)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(inner).
		Render(b.String())
}

// renderGroup lines up descriptions after the widest key of the group.
func renderGroup(bindings []key.Binding) string {
	keyWidth := 0
	for _, b := range bindings {
		keyWidth = max(keyWidth, ansi.StringWidth(b.Help().Key))
	}
	keyStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Width(keyWidth + keyGap)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	lines := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		lines[i] = keyStyle.Render(h.Key) + descStyle.Render(h.Desc)
	}
	return strings.Join(lines, "\n")
}
