// Package grid implements a virtualized two-dimensional grid with a frozen
// header row and a frozen leading column.
//
// The grid never owns more live cell views than fit on screen. Each column
// keeps a pool of views created from its template; scrolling unbinds views
// that leave the viewport and rebinds them to coordinates that enter it.
// Structural edits to the rows or columns are reconciled against the binding
// table so every bound view always shows the item at its coordinate.
//
// # Quick Start
//
//	cols := grid.NewCollection(
//	    grid.NewColumn(labelTemplate).WithHeader(nameHeader),
//	    grid.NewColumn(labelTemplate).WithWidth(12),
//	)
//	g := grid.New(host, grid.DefaultConfig())
//	if err := g.SetColumns(cols); err != nil { ... }
//	if err := g.SetRows(rows); err != nil { ... }
//	if err := g.SizeAllocated(80, 24); err != nil { ... }
//	_ = g.SetScrollOffset(0, 10)
//
// # Host
//
// The grid does not draw anything. It drives a [Host] that creates, attaches,
// positions and binds views inside four panels: the main panel, the frozen row,
// the frozen column and the corner. Positions handed to [Host.SetBounds] are
// relative to the panel the view is attached to; panel positions are handed to
// [Host.SetPanelBounds] relative to the grid origin.
//
// The grid is not safe for concurrent use.
package grid
