package grid

// geometry caches the left edge of every regular column and the total content
// width. It is rebuilt lazily after invalidate.
type geometry struct {
	edges []float64
	total float64
	built bool
}

func (g *geometry) invalidate() {
	g.edges = nil
	g.total = 0
	g.built = false
}

// ensure rebuilds the edge table for n columns if it is not current.
// advance returns the width plus spacing a column occupies.
func (g *geometry) ensure(n int, advance func(col int) float64) {
	if g.built && len(g.edges) == n {
		return
	}
	g.edges = make([]float64, n)
	var sofar float64
	for i := range g.edges {
		g.edges[i] = sofar
		sofar += advance(i)
	}
	g.total = sofar
	g.built = true
}

// advanceFor is the horizontal space a column of width w takes up.
// Degenerate widths advance by nothing, not even spacing.
func advanceFor(w, spacing float64) float64 {
	if w <= 0 {
		return 0
	}
	return w + spacing
}
