package grid

// panel mirrors the children of one host panel so the grid can lay them out
// without asking the host. box computes a child's rect from its index.
type panel struct {
	id       PanelID
	children []View
	box      func(v View, index int) Rect
}

func (p *panel) add(v View) {
	p.children = append(p.children, v)
}

func (p *panel) remove(v View) bool {
	for i, c := range p.children {
		if c == v {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return true
		}
	}
	return false
}

func (p *panel) indexOf(v View) int {
	for i, c := range p.children {
		if c == v {
			return i
		}
	}
	return -1
}

func (p *panel) layoutOne(h Host, v View) {
	if i := p.indexOf(v); i >= 0 {
		h.SetBounds(v, p.box(v, i))
	}
}

func (p *panel) layoutAll(h Host) {
	for i, v := range p.children {
		h.SetBounds(v, p.box(v, i))
	}
}
