package datasource

import (
	"github.com/mattn/go-runewidth"
)

// autoSampleRows bounds how many rows AutoColumns measures.
const autoSampleRows = 200

// MinColumnWidth is the narrowest auto-sized column.
const MinColumnWidth = 3

// ColumnSpec describes one displayed field.
type ColumnSpec struct {
	Field  int
	Header string
	Width  int
}

// AutoColumns sizes one column per field from the header and the widest of
// the first sampled values, clamped to [MinColumnWidth, maxWidth]. A
// maxWidth of zero or less means no upper bound.
func AutoColumns(fields []string, rows []Record, maxWidth int) []ColumnSpec {
	specs := make([]ColumnSpec, len(fields))
	for i, f := range fields {
		specs[i] = ColumnSpec{Field: i, Header: f, Width: runewidth.StringWidth(f)}
	}

	sample := rows
	if len(sample) > autoSampleRows {
		sample = sample[:autoSampleRows]
	}
	for _, r := range sample {
		for i := range specs {
			if w := runewidth.StringWidth(r.Value(i)); w > specs[i].Width {
				specs[i].Width = w
			}
		}
	}

	for i := range specs {
		specs[i].Width = max(specs[i].Width, MinColumnWidth)
		if maxWidth > 0 {
			specs[i].Width = min(specs[i].Width, max(maxWidth, MinColumnWidth))
		}
	}
	return specs
}
