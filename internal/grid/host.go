package grid

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Rect is a position and size in grid units.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Offscreen is where unbound views are parked when the rows they showed no
// longer exist.
var Offscreen = Rect{X: -1000, Y: -1000}

// PanelID identifies one of the four panels a grid lays views into.
type PanelID int

const (
	PanelMain PanelID = iota
	PanelFrozenRow
	PanelFrozenColumn
	PanelCorner
)

func (p PanelID) String() string {
	switch p {
	case PanelMain:
		return "main"
	case PanelFrozenRow:
		return "frozen-row"
	case PanelFrozenColumn:
		return "frozen-column"
	case PanelCorner:
		return "corner"
	default:
		return fmt.Sprintf("panel(%d)", int(p))
	}
}

// View is a host-owned visual element. Views are used as map keys, so the
// dynamic type must be comparable; pointer types are the norm.
type View interface {
	DataContext() any
}

// Highlighter is implemented by views that can show the selection highlight.
// Views without it are bound normally but never highlighted.
type Highlighter interface {
	SetBackground(c lipgloss.TerminalColor)
}

// ListCell marks list-style cell objects. Templates must produce views, and a
// ListCell is rejected even if it also satisfies View.
type ListCell interface {
	ListCell()
}

// Template produces fresh cell content for a column.
type Template interface {
	CreateContent() any
}

// TemplateFunc adapts a function to Template.
type TemplateFunc func() any

func (f TemplateFunc) CreateContent() any { return f() }

// Host is the set of view operations a grid needs from its toolkit.
type Host interface {
	// Attach adds v to the children of panel p.
	Attach(p PanelID, v View)
	// Detach removes v from the children of panel p.
	Detach(p PanelID, v View)
	// SetBounds positions v relative to its panel.
	SetBounds(v View, r Rect)
	// SetDataContext binds v to a row item, or clears it when data is nil.
	SetDataContext(v View, data any)
	// SetPanelBounds positions panel p relative to the grid.
	SetPanelBounds(p PanelID, r Rect)
	// NewPlaceholder returns an empty view used where a header is missing.
	NewPlaceholder() View
}
