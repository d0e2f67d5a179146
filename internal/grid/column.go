package grid

import (
	"errors"
	"sort"
)

// DefaultColumnWidth is the width of a column that never had one set.
const DefaultColumnWidth = 80

// ColumnAttr names a column property whose change a grid reacts to.
type ColumnAttr int

const (
	ColumnWidth ColumnAttr = iota
	ColumnTemplate
	ColumnHeader
)

func (a ColumnAttr) String() string {
	switch a {
	case ColumnWidth:
		return "width"
	case ColumnTemplate:
		return "template"
	case ColumnHeader:
		return "header"
	default:
		return "unknown"
	}
}

// Column describes one grid column: how wide it is, how its cells are made
// and what sits above it in the frozen row.
type Column struct {
	width    float64
	template Template
	header   View

	listeners map[int]func(ColumnAttr) error
	nextID    int
}

// NewColumn returns a column of DefaultColumnWidth using tmpl for its cells.
func NewColumn(tmpl Template) *Column {
	return &Column{width: DefaultColumnWidth, template: tmpl}
}

// WithWidth sets the width without notifying listeners. Use it while building.
func (c *Column) WithWidth(w float64) *Column {
	c.width = w
	return c
}

// WithHeader sets the header view without notifying listeners.
func (c *Column) WithHeader(v View) *Column {
	c.header = v
	return c
}

func (c *Column) Width() float64     { return c.width }
func (c *Column) Template() Template { return c.template }
func (c *Column) HeaderView() View   { return c.header }

// SetWidth changes the width and notifies listeners.
func (c *Column) SetWidth(w float64) error {
	if w == c.width {
		return nil
	}
	c.width = w
	return c.notify(ColumnWidth)
}

// SetTemplate replaces the cell template. Existing cells of the column are
// discarded by any grid showing it.
func (c *Column) SetTemplate(t Template) error {
	c.template = t
	return c.notify(ColumnTemplate)
}

// SetHeaderView replaces the frozen-row view of the column.
func (c *Column) SetHeaderView(v View) error {
	c.header = v
	return c.notify(ColumnHeader)
}

// Subscribe registers fn for property changes. The returned func removes it.
func (c *Column) Subscribe(fn func(ColumnAttr) error) func() {
	if c.listeners == nil {
		c.listeners = make(map[int]func(ColumnAttr) error)
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *Column) notify(attr ColumnAttr) error {
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var errs []error
	for _, id := range ids {
		if fn, ok := c.listeners[id]; ok {
			if err := fn(attr); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
