package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello…"},
		{"one cell", "hello", 1, "…"},
		{"zero", "hello", 0, ""},
		{"wide runes kept whole", "日本語テキスト", 6, "日本…"},
		{"combining mark stays attached", "éééé", 3, "éé…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.in, tt.width)
			require.Equal(t, tt.want, got)
			require.LessOrEqual(t, lipgloss.Width(got), max(tt.width, 0))
		})
	}
}

func TestPadRight(t *testing.T) {
	require.Equal(t, "ab   ", PadRight("ab", 5))
	require.Equal(t, "abcdef", PadRight("abcdef", 3))
	require.Equal(t, "日 ", PadRight("日", 3))
}

func TestRenderWithTitleBorder(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := RenderWithTitleBorder("line one\nline two", "Row 3", 20, 5, false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "╭─ Row 3 ──────────╮", lines[0])
	require.Equal(t, "│line one          │", lines[1])
	require.Equal(t, "│line two          │", lines[2])
	require.Equal(t, "╰──────────────────╯", lines[4])
	for _, l := range lines {
		require.Equal(t, 20, lipgloss.Width(l))
	}
}

func TestRenderWithTitleBorder_NarrowDropsTitle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out := RenderWithTitleBorder("", "Long title", 5, 3, true)
	require.Equal(t, "╭───╮", strings.Split(out, "\n")[0])
}

func TestApplyTheme(t *testing.T) {
	orig := SelectionBgColor
	t.Cleanup(func() { SelectionBgColor = orig; rebuildStyles() })

	require.NoError(t, ApplyTheme(map[string]string{"grid.selection": "#112233"}))
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#112233", Dark: "#112233"}, SelectionBgColor)

	require.ErrorContains(t, ApplyTheme(map[string]string{"nope": "#fff"}), "unknown color token")
	require.ErrorContains(t, ApplyTheme(map[string]string{"grid.selection": "blue"}), "invalid hex color")
}

func TestIsValidHexColor(t *testing.T) {
	require.True(t, IsValidHexColor("#fff"))
	require.True(t, IsValidHexColor("#A0B1C2"))
	require.False(t, IsValidHexColor("fff"))
	require.False(t, IsValidHexColor("#ffff"))
	require.False(t, IsValidHexColor("#gggggg"))
}
