package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Binding Invariants
// ============================================================================

// TestProperty_BindingsTrackViewport applies random structural changes and
// scrolls, checking after every step that the binding table is consistent,
// covers the viewport and never grows a pool past the visible row count.
func TestProperty_BindingsTrackViewport(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, rapid.IntRange(0, 6).Draw(t, "cols"), rapid.IntRange(0, 30).Draw(t, "rows"))
		g := f.grid
		next := 0
		newRow := func() string {
			next++
			return fmt.Sprintf("n%d", next)
		}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			op := rapid.IntRange(0, 10).Draw(t, fmt.Sprintf("op-%d", i))
			nc, nr := f.cols.Len(), f.rows.Len()

			switch op {
			case 0:
				x := rapid.Float64Range(-20, 100).Draw(t, "x")
				y := rapid.Float64Range(-20, 100).Draw(t, "y")
				require.NoError(t, g.SetScrollOffset(x, y))
			case 1:
				at := rapid.IntRange(0, nc).Draw(t, "colInsert")
				w := rapid.Float64Range(0, 15).Draw(t, "width")
				require.NoError(t, f.cols.Insert(at, column(fmt.Sprintf("i%d", i), w)))
			case 2:
				if nc == 0 {
					continue
				}
				at := rapid.IntRange(0, nc-1).Draw(t, "colRemove")
				n := rapid.IntRange(1, nc-at).Draw(t, "colRemoveCount")
				require.NoError(t, f.cols.RemoveRange(at, n))
			case 3:
				if nc == 0 {
					continue
				}
				at := rapid.IntRange(0, nc-1).Draw(t, "colReplace")
				require.NoError(t, f.cols.Replace(at, column(fmt.Sprintf("r%d", i), 10)))
			case 4:
				if nc < 2 {
					continue
				}
				from := rapid.IntRange(0, nc-1).Draw(t, "colFrom")
				to := rapid.IntRange(0, nc-1).Draw(t, "colTo")
				require.NoError(t, f.cols.Move(from, to))
			case 5:
				if nc == 0 {
					continue
				}
				at := rapid.IntRange(0, nc-1).Draw(t, "colWidth")
				w := rapid.Float64Range(0, 25).Draw(t, "newWidth")
				require.NoError(t, f.cols.At(at).SetWidth(w))
			case 6:
				at := rapid.IntRange(0, nr).Draw(t, "rowInsert")
				require.NoError(t, f.rows.Insert(at, newRow(), newRow()))
			case 7:
				if nr == 0 {
					continue
				}
				at := rapid.IntRange(0, nr-1).Draw(t, "rowRemove")
				n := rapid.IntRange(1, nr-at).Draw(t, "rowRemoveCount")
				require.NoError(t, f.rows.RemoveRange(at, n))
			case 8:
				if nr == 0 {
					continue
				}
				at := rapid.IntRange(0, nr-1).Draw(t, "rowReplace")
				require.NoError(t, f.rows.Replace(at, newRow()))
			case 9:
				if g.FrozenColumn() == nil {
					w := rapid.Float64Range(0, 8).Draw(t, "frozenWidth")
					require.NoError(t, g.SetFrozenColumn(NewColumn(cellTemplate("f")).WithWidth(w)))
				} else {
					require.NoError(t, g.SetFrozenColumn(nil))
				}
			case 10:
				if nr == 0 {
					g.SetSelectedRowIndex(-1)
					continue
				}
				g.SetSelectedRowIndex(rapid.IntRange(-1, nr-1).Draw(t, "select"))
			}

			requireConsistent(t, g)

			x, y := g.ScrollOffset()
			mx, my := g.ScrollMax()
			require.GreaterOrEqual(t, x, 0.0)
			require.GreaterOrEqual(t, y, 0.0)
			require.LessOrEqual(t, x, mx)
			require.LessOrEqual(t, y, my)

			for _, col := range g.pool.inventoryColumns() {
				require.LessOrEqual(t, g.PoolSize(col), 6, "pool of column %d outgrew the viewport", col)
			}
		}
	})
}

// TestProperty_SelectionHighlightMatchesIndex checks that exactly the bound
// views of the selected row carry the selected background.
func TestProperty_SelectionHighlightMatchesIndex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, 3, 20)
		g := f.grid

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("scroll-%d", i)) {
				require.NoError(t, g.SetScrollOffset(0, rapid.Float64Range(0, 15).Draw(t, "y")))
			} else {
				_ = g.HandleTap(rapid.Float64Range(0, 30).Draw(t, "tx"), rapid.Float64Range(0, 6).Draw(t, "ty"))
			}

			sel := g.SelectedBackground()
			for v, c := range g.pool.viewToCoords {
				bg := v.(*fakeView).bg
				if c.row == g.SelectedRowIndex() {
					require.Equal(t, sel, bg, "selected row %d not highlighted", c.row)
				} else {
					require.NotEqual(t, sel, bg, "row %d highlighted but %d is selected", c.row, g.SelectedRowIndex())
				}
			}
		}
	})
}
