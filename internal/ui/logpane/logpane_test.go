package logpane

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/datagrid/internal/log"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func entry(level, msg string) string {
	return "2026-01-02T03:04:05 [" + level + "] [grid] " + msg + "\n"
}

func key(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_DefaultCapacity(t *testing.T) {
	m := New(0)
	require.Equal(t, DefaultCapacity, m.capacity)
	require.False(t, m.Visible())
	require.Equal(t, log.LevelDebug, m.MinLevel())
}

func TestAppend_DropsOldest(t *testing.T) {
	m := New(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		m.Append(entry("INFO", s))
	}
	m.Append("")

	require.Equal(t, 3, m.Len())
	got := m.Filtered()
	require.True(t, strings.HasSuffix(got[0], " b"))
	require.True(t, strings.HasSuffix(got[2], " d"))
}

func TestAppend_CapacityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 20).Draw(t, "capacity")
		n := rapid.IntRange(0, 60).Draw(t, "n")

		m := New(capacity)
		for i := range n {
			m.Append(entry("DEBUG", strings.Repeat("x", i+1)))
		}
		if m.Len() != min(n, capacity) {
			t.Fatalf("len %d, want %d", m.Len(), min(n, capacity))
		}
		if n > 0 {
			last := m.Filtered()[m.Len()-1]
			if !strings.HasSuffix(last, strings.Repeat("x", n)) {
				t.Fatalf("newest entry lost: %q", last)
			}
		}
	})
}

func TestFiltered_ByLevel(t *testing.T) {
	m := New(10)
	m.Append(entry("DEBUG", "d"))
	m.Append(entry("INFO", "i"))
	m.Append(entry("WARN", "w"))
	m.Append(entry("ERROR", "e"))
	m.Append("untagged line")
	m.SetSize(100, 30)
	m.Toggle()

	tests := []struct {
		key  string
		want int
	}{
		{"d", 5},
		{"i", 4},
		{"w", 3},
		{"e", 2},
	}
	for _, tt := range tests {
		m = m.Update(key(tt.key))
		assert.Len(t, m.Filtered(), tt.want, "level %s", tt.key)
	}
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := New(10)
	m.Append(entry("INFO", "x"))
	m = m.Update(key("c"))
	require.Equal(t, 1, m.Len())
}

func TestUpdate_ClearAndClose(t *testing.T) {
	m := New(10)
	m.SetSize(100, 30)
	m.Toggle()
	m.Append(entry("INFO", "x"))

	m = m.Update(key("c"))
	require.Zero(t, m.Len())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")

	m = m.Update(key("esc"))
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestView_Box(t *testing.T) {
	m := New(10)
	m.SetSize(80, 20)
	m.Append(entry("ERROR", "boom "+strings.Repeat("z", 200)))
	m.Toggle()

	view := ansi.Strip(m.View())
	for _, s := range []string{"Logs", "[c] Clear", "[e] Error", "[esc] Close", "boom"} {
		assert.Contains(t, view, s)
	}
	assert.Equal(t, 78, lipgloss.Width(view), "76 wide plus the border")
	assert.Contains(t, view, "…", "long entries are truncated")
}

func TestOverlay(t *testing.T) {
	bg := make([]string, 20)
	for i := range bg {
		bg[i] = strings.Repeat(".", 80)
	}
	background := strings.Join(bg, "\n")

	m := New(10)
	m.SetSize(80, 20)
	require.Equal(t, background, m.Overlay(background))

	m.Toggle()
	lines := strings.Split(ansi.Strip(m.Overlay(background)), "\n")
	require.Len(t, lines, 20)
	assert.Contains(t, strings.Join(lines, "\n"), "Logs")
}
