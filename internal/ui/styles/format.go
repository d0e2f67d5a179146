package styles

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// TruncateString cuts s to at most maxWidth terminal cells, ending in an
// ellipsis when anything was dropped. Grapheme clusters are never split, so
// wide and combining characters stay intact.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return Ellipsis
	}

	budget := maxWidth - 1
	var b strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var boundaries int
		cluster, s, boundaries, state = uniseg.StepString(s, state)
		w := boundaries >> uniseg.ShiftWidth
		if used+w > budget {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String() + Ellipsis
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
