package gridview

import (
	"strings"

	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/ui/markdown"
	"github.com/zjrosen/datagrid/internal/ui/styles"
)

const minDetailsWidth = 24

// detailsPane renders the selected record as markdown. The renderer and the
// last rendering are kept between frames.
type detailsPane struct {
	style    string
	renderer *markdown.Renderer

	key      string
	rendered string
}

func newDetailsPane(style string) *detailsPane {
	return &detailsPane{style: style}
}

// render returns the markdown body for rec, wrapped to width.
func (d *detailsPane) render(fields []string, rec datasource.Record, width int) string {
	values := make([]string, len(fields))
	for i := range fields {
		values[i] = rec.Value(i)
	}
	key := rec.ID + "\x00" + strings.Join(fields, "\x00") + "\x00" + strings.Join(values, "\x00")
	if d.renderer != nil && d.renderer.Width() == width && d.key == key {
		return d.rendered
	}

	if d.renderer == nil || d.renderer.Width() != width {
		r, err := markdown.New(width, d.style)
		if err != nil {
			log.ErrorErr(log.CatUI, "creating details renderer", err)
			return statusErrStyle.Render(err.Error())
		}
		d.renderer = r
	}

	out, err := d.renderer.Render(markdown.FieldList(rec.ID, fields, values))
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering details", err, "record", rec.ID)
		return statusErrStyle.Render(err.Error())
	}
	d.key, d.rendered = key, strings.Trim(out, "\n")
	return d.rendered
}

// renderDetails draws the pane for the current selection.
func (m Model) renderDetails(width, height int) string {
	var body string
	row := m.grid.SelectedRowIndex()
	if row >= 0 && row < m.table.Rows.Len() {
		body = m.details.render(m.table.Fields, m.table.Rows.At(row), max(width-4, 1))
	} else {
		body = styles.HintStyle.Render("No row selected")
	}
	return styles.RenderWithTitleBorder(body, "Details", width, height, row >= 0)
}
