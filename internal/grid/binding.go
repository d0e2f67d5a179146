package grid

import (
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/tracing"
)

func (g *Grid) attach(p *panel, v View) {
	p.add(v)
	g.host.Attach(p.id, v)
}

func (g *Grid) detach(p *panel, v View) {
	if p.remove(v) {
		g.host.Detach(p.id, v)
	}
}

func (g *Grid) cellPanel(col int) *panel {
	if col < 0 {
		return g.frozenCol
	}
	return g.main
}

// createView asks the column's template for a new cell view.
func (g *Grid) createView(col int) (View, error) {
	var tmpl Template
	if c := g.column(col); c != nil {
		tmpl = c.Template()
	}
	if tmpl == nil {
		return nil, &TemplateError{Column: col, Reason: "no template"}
	}

	content := tmpl.CreateContent()
	if content == nil {
		return nil, &TemplateError{Column: col, Reason: "template returned nil"}
	}
	if _, ok := content.(ListCell); ok {
		return nil, &TemplateError{Column: col, Reason: "template returned a list cell instead of a view"}
	}
	v, ok := content.(View)
	if !ok {
		return nil, &TemplateError{Column: col, Reason: fmt.Sprintf("template returned %T, which is not a view", content)}
	}
	if !reflect.TypeOf(content).Comparable() {
		return nil, &TemplateError{Column: col, Reason: fmt.Sprintf("view type %T is not comparable", content)}
	}
	if g.pool.owns(v) {
		return nil, &TemplateError{Column: col, Reason: "template returned a view already in use"}
	}

	g.host.SetDataContext(v, nil)
	return v, nil
}

// findAvailableView returns an unbound view from the column's pool, creating
// and attaching a new one only when every pooled view is in use.
func (g *Grid) findAvailableView(col int) (View, error) {
	if v, ok := g.pool.available(col); ok {
		return v, nil
	}

	v, err := g.createView(col)
	if err != nil {
		return nil, err
	}
	g.pool.add(col, v)
	g.attach(g.cellPanel(col), v)
	g.stats.Created++

	trace.SpanFromContext(g.spanCtx).AddEvent(tracing.EventViewCreated,
		trace.WithAttributes(attribute.Int(tracing.AttrColumnIndex, col)))
	log.Debug(log.CatPool, "created cell view", "column", col, "pool", g.pool.size(col))
	return v, nil
}

func (g *Grid) bind(v View, col, row int) {
	g.pool.set(v, col, row)
	g.host.SetDataContext(v, g.rowItem(row))
	g.applySelection(v, row)
	g.stats.Binds++
}

func (g *Grid) unbind(v View) {
	if !g.pool.bound(v) {
		return
	}
	g.host.SetDataContext(v, nil)
	g.pool.unset(v)
	g.stats.Unbinds++
}

// rebind refreshes the data and highlight of a view that keeps its coordinate.
func (g *Grid) rebind(v View, row int) {
	g.host.SetDataContext(v, g.rowItem(row))
	g.applySelection(v, row)
}

// discardColumn unbinds every view of the column and forgets its pool.
// With detach, the views are also removed from their panel.
func (g *Grid) discardColumn(col int, detach bool) {
	views, ok := g.pool.inventory[col]
	if !ok {
		return
	}
	p := g.cellPanel(col)
	for _, v := range views {
		g.unbind(v)
		if detach {
			g.detach(p, v)
		}
	}
	g.pool.forget(col)
	log.Debug(log.CatPool, "discarded column pool", "column", col, "views", len(views), "detach", detach)
}

func (g *Grid) bindColumn(col int, rows span) error {
	if rows.empty() {
		return nil
	}
	for row := rows.first; row <= rows.last; row++ {
		if _, ok := g.pool.lookup(col, row); ok {
			continue
		}
		v, err := g.findAvailableView(col)
		if err != nil {
			return err
		}
		g.bind(v, col, row)
	}
	return nil
}

// updateVisibility unbinds every coordinate outside the viewport and binds
// every coordinate inside it. Nested calls return immediately.
func (g *Grid) updateVisibility() error {
	if g.updating {
		return nil
	}
	g.updating = true
	defer func() { g.updating = false }()

	cols := g.visibleColumnSpan()
	rows := g.visibleRowSpan()
	frozenShown := g.advance(-1) > 0

	for _, col := range g.pool.columns() {
		for _, row := range g.pool.rowsOf(col) {
			keep := rows.contains(row)
			if col < 0 {
				keep = keep && frozenShown
			} else {
				keep = keep && cols.contains(col)
			}
			if !keep {
				v, _ := g.pool.lookup(col, row)
				g.unbind(v)
			}
		}
	}

	if !cols.empty() {
		for col := cols.first; col <= cols.last; col++ {
			if err := g.bindColumn(col, rows); err != nil {
				return err
			}
		}
	}
	if frozenShown {
		if err := g.bindColumn(-1, rows); err != nil {
			return err
		}
	}
	return nil
}

// placeholderFor returns the cached empty header of a column without one.
func (g *Grid) placeholderFor(c *Column) View {
	if v, ok := g.placeholders[c]; ok {
		return v
	}
	v := g.host.NewPlaceholder()
	g.placeholders[c] = v
	return v
}

func (g *Grid) headerFor(c *Column) View {
	if h := c.HeaderView(); h != nil {
		return h
	}
	return g.placeholderFor(c)
}

// rebuildFrozenRow replaces the header views with one per current column.
func (g *Grid) rebuildFrozenRow() {
	for _, v := range g.PanelChildren(PanelFrozenRow) {
		g.detach(g.frozenRow, v)
	}

	live := make(map[*Column]bool, g.columnCount()+1)
	for i := 0; i < g.columnCount(); i++ {
		c := g.columns.At(i)
		live[c] = true
		g.attach(g.frozenRow, g.headerFor(c))
	}
	if g.frozen != nil {
		live[g.frozen] = true
	}
	for c := range g.placeholders {
		if !live[c] {
			delete(g.placeholders, c)
		}
	}
}

// updateCorner puts the frozen column's header in the corner panel.
func (g *Grid) updateCorner() {
	if g.cornerView != nil {
		g.detach(g.corner, g.cornerView)
		g.cornerView = nil
	}
	if g.frozen == nil {
		return
	}
	g.cornerView = g.headerFor(g.frozen)
	g.attach(g.corner, g.cornerView)
}
