// Package overlay splices rendered blocks into other rendered blocks without
// disturbing the ANSI styling on either side.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where Place puts the foreground.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	// Absolute uses Config.X and Config.Y.
	Absolute
)

// Config controls Place.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int
	X, Y     int
}

// Splice writes fg over line starting at cell x. The line is padded with
// spaces when it is shorter than x, and whatever fg covers is dropped.
func Splice(line, fg string, x int) string {
	if x < 0 {
		fg = ansi.TruncateLeft(fg, -x, "")
		x = 0
	}
	fgWidth := ansi.StringWidth(fg)
	if fgWidth == 0 {
		return line
	}

	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	if end := x + fgWidth; end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}

// Place renders fg on top of bg. bg is padded to cfg.Height lines.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := position(cfg, lipgloss.Width(fg), len(fgLines))
	for i, l := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = Splice(bgLines[row], l, x)
	}
	return strings.Join(bgLines, "\n")
}

func position(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Absolute:
		return max(cfg.X, 0), max(cfg.Y, 0)
	case Top:
		x, y = (cfg.Width-fgWidth)/2, cfg.PadY
	case Bottom:
		x, y = (cfg.Width-fgWidth)/2, cfg.Height-fgHeight-cfg.PadY
	default:
		x, y = (cfg.Width-fgWidth)/2, (cfg.Height-fgHeight)/2
	}
	return max(x, 0), max(y, 0)
}
