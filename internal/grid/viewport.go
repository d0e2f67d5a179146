package grid

import "math"

// span is an inclusive index range. It is empty when last < first.
type span struct {
	first, last int
}

var emptySpan = span{first: 0, last: -1}

func (s span) empty() bool { return s.last < s.first }

func (s span) contains(i int) bool { return !s.empty() && i >= s.first && i <= s.last }

// visibleColumns scans the edge table for the columns that intersect
// [left, left+width]. advance is the width plus spacing of a column.
func visibleColumns(edges []float64, advance func(col int) float64, left, width float64) span {
	if width <= 0 || len(edges) == 0 {
		return emptySpan
	}

	first := -1
	for col := range edges {
		if edges[col]+advance(col) > left {
			first = col
			break
		}
	}
	if first < 0 {
		return emptySpan
	}

	right := left + width
	last := first
	for col := first + 1; col < len(edges); col++ {
		if edges[col] > right {
			break
		}
		last = col
	}
	return span{first: first, last: last}
}

// visibleRows computes the rows intersecting [top, top+height] arithmetically,
// since every row occupies the same step.
func visibleRows(top, height, step float64, rowCount int) span {
	if height <= 0 || step <= 0 || rowCount <= 0 {
		return emptySpan
	}
	first := int(math.Floor(top / step))
	last := int(math.Floor((top + height) / step))
	if first < 0 {
		first = 0
	}
	if last > rowCount-1 {
		last = rowCount - 1
	}
	if first > last {
		return emptySpan
	}
	return span{first: first, last: last}
}
