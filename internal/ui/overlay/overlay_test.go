package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplice(t *testing.T) {
	tests := []struct {
		name string
		line string
		fg   string
		x    int
		want string
	}{
		{"middle", "AAAAAA", "XX", 2, "AAXXAA"},
		{"start", "AAAAAA", "XX", 0, "XXAAAA"},
		{"past end pads", "AA", "XX", 4, "AA  XX"},
		{"overhangs end", "AAAA", "XXX", 3, "AAAXXX"},
		{"negative clips left of fg", "AAAA", "XYZ", -1, "YZAA"},
		{"empty fg", "AAAA", "", 1, "AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Splice(tt.line, tt.fg, tt.x))
		})
	}
}

func TestSplice_PreservesStyledBackground(t *testing.T) {
	bg := "\x1b[31mRRRRRR\x1b[0m"
	out := Splice(bg, "XX", 2)
	assert.Equal(t, "RRXXRR", ansi.Strip(out))
	assert.Equal(t, 6, ansi.StringWidth(out))
}

func TestSplice_WideCharacters(t *testing.T) {
	out := Splice("AAAAAA", "日", 1)
	assert.Equal(t, "A日AAA", out)
	assert.Equal(t, 6, lipgloss.Width(out))
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", "AAAAA\nAAAAA\nAAAAA")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AXXAA", lines[0])
	assert.Equal(t, "AXXAA", lines[1])
	assert.Equal(t, "AAAAA", lines[2])
}

func TestPlace_TopAndBottom(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA"

	top := strings.Split(Place(Config{Width: 5, Height: 4, Position: Top, PadY: 1}, "X", bg), "\n")
	assert.Equal(t, "AAAAA", top[0])
	assert.Equal(t, "AAXAA", top[1])

	bottom := strings.Split(Place(Config{Width: 5, Height: 4, Position: Bottom}, "X", bg), "\n")
	assert.Equal(t, "AAXAA", bottom[3])
}

func TestPlace_Absolute(t *testing.T) {
	out := Place(Config{Width: 6, Height: 2, Position: Absolute, X: 4, Y: 1}, "Z", "")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "    Z ", lines[1])
}

func TestPlace_LargeForegroundClampsToOrigin(t *testing.T) {
	out := Place(Config{Width: 3, Height: 2, Position: Center}, "XXXXX", "AAA\nAAA")
	assert.True(t, strings.HasPrefix(out, "XXXXX"))
}
