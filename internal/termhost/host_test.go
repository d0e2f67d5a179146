package termhost

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datagrid/internal/grid"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func plain(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func terminalConfig() grid.Config {
	cfg := grid.DefaultConfig()
	cfg.RowHeight = 1
	cfg.RowSpacing = 0
	cfg.ColumnSpacing = 1
	cfg.HeaderHeight = 1
	cfg.SelectionMode = grid.SelectionRow
	cfg.SelectedBackground = lipgloss.Color("4")
	return cfg
}

func newHostedGrid(t *testing.T, frozen bool) (*grid.Grid, *Host) {
	t.Helper()
	h := New()
	g := grid.New(h, terminalConfig())

	var cols []*grid.Column
	for _, name := range []string{"h0", "h1", "h2"} {
		cols = append(cols, grid.NewColumn(TextTemplate(Stringer)).WithWidth(5).WithHeader(NewHeader(name)))
	}
	require.NoError(t, g.SetColumns(grid.NewCollection(cols...)))
	require.NoError(t, g.SetRows(grid.NewCollection("a", "b", "c", "d")))
	if frozen {
		fc := grid.NewColumn(TextTemplate(Stringer, WithKind(KindFrozen))).WithWidth(3).WithHeader(NewHeader("#"))
		require.NoError(t, g.SetFrozenColumn(fc))
	}
	require.NoError(t, g.SizeAllocated(17, 4))
	return g, h
}

func TestHost_RendersHeaderAndRows(t *testing.T) {
	_, h := newHostedGrid(t, false)

	require.Equal(t, []string{
		"h0    h1    h2   ",
		"a     a     a    ",
		"b     b     b    ",
		"c     c     c    ",
	}, plain(h.Render(17, 4)))
}

func TestHost_FrozenColumnCoversScrolledCells(t *testing.T) {
	g, h := newHostedGrid(t, true)

	require.Equal(t, []string{
		"#   h0    h1    h",
		"a   a     a     a",
		"b   b     b     b",
		"c   c     c     c",
	}, plain(h.Render(17, 4)))

	require.NoError(t, g.SetScrollOffset(2, 0))
	require.Equal(t, []string{
		"#       h1    h2 ",
		"a       a     a  ",
		"b       b     b  ",
		"c       c     c  ",
	}, plain(h.Render(17, 4)))
}

func TestHost_VerticalScroll(t *testing.T) {
	g, h := newHostedGrid(t, false)
	require.NoError(t, g.SetScrollOffset(0, 1))

	lines := plain(h.Render(17, 4))
	require.Equal(t, "h0    h1    h2   ", lines[0], "header row stays put")
	require.Equal(t, "b     b     b    ", lines[1])
	require.Equal(t, "d     d     d    ", lines[3])
}

func TestHost_PanelBoundsAndChildren(t *testing.T) {
	_, h := newHostedGrid(t, true)

	require.Equal(t, grid.Rect{X: 4, Y: 1, Width: 13, Height: 3}, h.PanelBounds(grid.PanelMain))
	require.Equal(t, grid.Rect{X: 0, Y: 0, Width: 4, Height: 1}, h.PanelBounds(grid.PanelCorner))
	require.Len(t, h.Children(grid.PanelCorner), 1)
	require.Len(t, h.Children(grid.PanelFrozenRow), 3)

	corner := h.Children(grid.PanelCorner)[0]
	r, ok := h.Bounds(corner)
	require.True(t, ok)
	require.Equal(t, grid.Rect{Width: 3, Height: 1}, r)
}

func TestHost_SelectionHighlightsLabels(t *testing.T) {
	g, h := newHostedGrid(t, false)
	require.True(t, g.HandleTap(1, 2))
	require.Equal(t, 1, g.SelectedRowIndex())

	for _, v := range h.Children(grid.PanelMain) {
		l := v.(*Label)
		if l.DataContext() == "b" {
			require.Equal(t, lipgloss.Color("4"), l.Background())
		}
	}
}

func TestHost_DetachForgetsBounds(t *testing.T) {
	h := New()
	l := NewHeader("x")
	h.Attach(grid.PanelMain, l)
	h.SetBounds(l, grid.Rect{Width: 1, Height: 1})
	require.Equal(t, 1, h.Stats().Attached)

	h.Detach(grid.PanelMain, l)
	_, ok := h.Bounds(l)
	require.False(t, ok)
	require.Zero(t, h.Stats().Attached)
}

func TestHost_RenderCache(t *testing.T) {
	_, h := newHostedGrid(t, false)

	first := h.Render(17, 4)
	misses := h.Stats().Cache.Misses
	require.NotZero(t, misses)

	require.Equal(t, first, h.Render(17, 4))
	stats := h.Stats().Cache
	require.Equal(t, misses, stats.Misses, "second frame is served from cache")
	require.NotZero(t, stats.Hits)

	h.FlushCache()
	require.Zero(t, h.Stats().Cache.Items)
}

func TestHost_WithoutRenderCache(t *testing.T) {
	h := New(WithoutRenderCache())
	g := grid.New(h, terminalConfig())
	require.NoError(t, g.SetColumns(grid.NewCollection(grid.NewColumn(TextTemplate(Stringer)).WithWidth(3))))
	require.NoError(t, g.SetRows(grid.NewCollection("x")))
	require.NoError(t, g.SizeAllocated(4, 2))

	require.Equal(t, []string{"    ", "x   "}, plain(h.Render(4, 2)))
	require.Zero(t, h.Stats().Cache.Hits+h.Stats().Cache.Misses)
	require.Equal(t, 1, h.Stats().Placeholders, "headerless column gets a placeholder")
}

func TestHost_RenderDegenerate(t *testing.T) {
	require.Empty(t, New().Render(0, 5))
	require.Equal(t, []string{"   ", "   "}, plain(New().Render(3, 2)))
}

func TestCellRect(t *testing.T) {
	require.Equal(t, cellBox{x: 1, y: 0, w: 2, h: 1}, cellRect(grid.Rect{X: 1.5, Y: 0, Width: 2, Height: 1}))
	require.True(t, cellRect(grid.Offscreen).empty())
	require.True(t, cellBox{x: 0, w: 3, h: 1}.intersect(cellBox{x: 5, w: 3, h: 1}).empty())
}
