// Package markdown renders markdown for the details pane.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// StyleAuto picks a dark or light style from the terminal background.
const StyleAuto = "auto"

// noMarginStyle removes document margins on top of the base style.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with datagrid's configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a markdown renderer that wraps at width. style is a glamour
// standard style name ("dark", "light", "notty", ...) or StyleAuto.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StyleAuto
	}
	base := glamour.WithAutoStyle()
	if style != StyleAuto {
		base = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(
		base,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s markdown renderer: %w", style, err)
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the configured style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// FieldList formats name/value pairs as a markdown heading followed by a
// bullet list. Values are shown as inline code so they render verbatim.
func FieldList(title string, names, values []string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", escape(title))
	}
	for i, name := range names {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		if v == "" {
			fmt.Fprintf(&b, "- **%s**: _empty_\n", escape(name))
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", escape(name), code(v))
	}
	return b.String()
}

var escaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "#", `\#`, "[", `\[`, "]", `\]`, "`", "\\`",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// code wraps s in a backtick fence long enough to contain any run of
// backticks inside it.
func code(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
