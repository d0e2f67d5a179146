// Package termhost hosts a grid in a terminal: it owns the label views the
// grid binds, tracks their panel-relative bounds and composites the panels
// into a single rendered frame.
package termhost

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/datagrid/internal/grid"
	"github.com/zjrosen/datagrid/internal/ui/styles"
)

// Kind selects the base style of a label.
type Kind int

const (
	KindCell Kind = iota
	KindHeader
	KindFrozen
)

func (k Kind) style() lipgloss.Style {
	switch k {
	case KindHeader:
		return styles.HeaderStyle
	case KindFrozen:
		return styles.FrozenStyle
	default:
		return styles.CellStyle
	}
}

// FormatFunc turns a bound row item into display text.
type FormatFunc func(data any) string

// Label is a single-line text view. Cell labels show their bound row through
// a FormatFunc; header labels show fixed text.
type Label struct {
	text   string
	format FormatFunc
	data   any
	align  lipgloss.Position
	kind   Kind
	bg     lipgloss.TerminalColor
}

var (
	_ grid.View        = (*Label)(nil)
	_ grid.Highlighter = (*Label)(nil)
)

// LabelOption configures a label.
type LabelOption func(*Label)

// WithAlign sets horizontal alignment within the label's width.
func WithAlign(a lipgloss.Position) LabelOption {
	return func(l *Label) { l.align = a }
}

// WithKind sets the base style.
func WithKind(k Kind) LabelOption {
	return func(l *Label) { l.kind = k }
}

// NewHeader returns a fixed-text header label.
func NewHeader(text string, opts ...LabelOption) *Label {
	l := &Label{text: text, kind: KindHeader}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewCell returns a label that renders its data context through format.
func NewCell(format FormatFunc, opts ...LabelOption) *Label {
	l := &Label{format: format}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Label) DataContext() any { return l.data }

// SetData binds the label to a row item; nil clears it.
func (l *Label) SetData(data any) { l.data = data }

func (l *Label) SetBackground(c lipgloss.TerminalColor) { l.bg = c }

// Background returns the current highlight color, or nil if never set.
func (l *Label) Background() lipgloss.TerminalColor { return l.bg }

// Text returns what the label currently displays.
func (l *Label) Text() string {
	if l.format == nil {
		return l.text
	}
	if l.data == nil {
		return ""
	}
	return l.format(l.data)
}

// Draw renders the label into a width x height block.
func (l *Label) Draw(width, height int) string {
	return renderCell(l.input(width, height))
}

func (l *Label) input(width, height int) cellInput {
	return cellInput{
		text:   l.Text(),
		width:  width,
		height: height,
		align:  l.align,
		kind:   l.kind,
		bg:     l.bg,
	}
}

// cellInput is everything that determines a label's rendered output.
type cellInput struct {
	text          string
	width, height int
	align         lipgloss.Position
	kind          Kind
	bg            lipgloss.TerminalColor
}

func (c cellInput) key() string {
	return fmt.Sprintf("%d|%d|%v|%d|%v|%s", c.width, c.height, c.align, c.kind, c.bg, c.text)
}

func renderCell(c cellInput) string {
	if c.width <= 0 || c.height <= 0 {
		return ""
	}

	style := c.kind.style()
	if c.bg != nil {
		if _, none := c.bg.(lipgloss.NoColor); !none {
			style = style.Background(c.bg)
		}
	}

	lines := make([]string, c.height)
	lines[0] = style.Render(alignText(styles.TruncateString(c.text, c.width), c.width, c.align))
	blank := style.Render(strings.Repeat(" ", c.width))
	for i := 1; i < c.height; i++ {
		lines[i] = blank
	}
	return strings.Join(lines, "\n")
}

func alignText(text string, width int, align lipgloss.Position) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}

	padding := width - textWidth
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", padding) + text
	case lipgloss.Center:
		left := padding / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", padding-left)
	default:
		return text + strings.Repeat(" ", padding)
	}
}

// Box is an empty view. The grid uses one where a column has no header.
type Box struct {
	data any
}

func (b *Box) DataContext() any { return b.data }
func (b *Box) SetData(data any) { b.data = data }
func (b *Box) Draw(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	line := strings.Repeat(" ", w)
	return strings.TrimSuffix(strings.Repeat(line+"\n", h), "\n")
}
