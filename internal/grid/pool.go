package grid

import "sort"

type coord struct {
	col, row int
}

// pool holds every view created per column and the two-way binding table
// between coordinates and the views currently showing them.
type pool struct {
	inventory    map[int][]View
	owned        map[View]struct{}
	coordsToView map[int]map[int]View
	viewToCoords map[View]coord
}

func newPool() *pool {
	return &pool{
		inventory:    make(map[int][]View),
		owned:        make(map[View]struct{}),
		coordsToView: make(map[int]map[int]View),
		viewToCoords: make(map[View]coord),
	}
}

func (p *pool) lookup(col, row int) (View, bool) {
	rows, ok := p.coordsToView[col]
	if !ok {
		return nil, false
	}
	v, ok := rows[row]
	return v, ok
}

func (p *pool) coordsOf(v View) (coord, bool) {
	c, ok := p.viewToCoords[v]
	return c, ok
}

func (p *pool) bound(v View) bool {
	_, ok := p.viewToCoords[v]
	return ok
}

func (p *pool) set(v View, col, row int) {
	rows, ok := p.coordsToView[col]
	if !ok {
		rows = make(map[int]View)
		p.coordsToView[col] = rows
	}
	rows[row] = v
	p.viewToCoords[v] = coord{col: col, row: row}
}

func (p *pool) unset(v View) {
	c, ok := p.viewToCoords[v]
	if !ok {
		return
	}
	delete(p.viewToCoords, v)
	if rows, ok := p.coordsToView[c.col]; ok {
		delete(rows, c.row)
	}
}

// available returns the first unbound view of col in creation order.
func (p *pool) available(col int) (View, bool) {
	for _, v := range p.inventory[col] {
		if !p.bound(v) {
			return v, true
		}
	}
	return nil, false
}

func (p *pool) add(col int, v View) {
	p.inventory[col] = append(p.inventory[col], v)
	p.owned[v] = struct{}{}
}

// owns reports whether v is in the inventory of any column.
func (p *pool) owns(v View) bool {
	_, ok := p.owned[v]
	return ok
}

// forget drops the inventory and bindings of col. Callers unbind first.
func (p *pool) forget(col int) {
	for _, v := range p.inventory[col] {
		delete(p.owned, v)
	}
	delete(p.inventory, col)
	delete(p.coordsToView, col)
}

// shift renumbers every regular column >= from by delta. Columns that end up
// with nothing moving into them simply cease to exist.
func (p *pool) shift(from, delta int) {
	if delta == 0 {
		return
	}
	renumber := func(col int) int {
		if col >= from && col >= 0 {
			return col + delta
		}
		return col
	}

	inv := make(map[int][]View, len(p.inventory))
	for col, views := range p.inventory {
		inv[renumber(col)] = views
	}
	p.inventory = inv

	byCol := make(map[int]map[int]View, len(p.coordsToView))
	for col, rows := range p.coordsToView {
		byCol[renumber(col)] = rows
	}
	p.coordsToView = byCol

	for v, c := range p.viewToCoords {
		p.viewToCoords[v] = coord{col: renumber(c.col), row: c.row}
	}
}

// columns returns the column keys of the binding table in ascending order.
func (p *pool) columns() []int {
	cols := make([]int, 0, len(p.coordsToView))
	for col := range p.coordsToView {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// inventoryColumns returns the column keys of the inventory in ascending order.
func (p *pool) inventoryColumns() []int {
	cols := make([]int, 0, len(p.inventory))
	for col := range p.inventory {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// rowsOf returns the bound rows of col in ascending order.
func (p *pool) rowsOf(col int) []int {
	rows := make([]int, 0, len(p.coordsToView[col]))
	for row := range p.coordsToView[col] {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

func (p *pool) boundCount() int { return len(p.viewToCoords) }

func (p *pool) size(col int) int { return len(p.inventory[col]) }

func (p *pool) totalSize() int {
	n := 0
	for _, views := range p.inventory {
		n += len(views)
	}
	return n
}
