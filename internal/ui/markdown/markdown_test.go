package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestFieldList(t *testing.T) {
	got := FieldList("row r1", []string{"name", "note", "city"}, []string{"Ada", ""})
	require.Equal(t, "## row r1\n\n- **name**: `Ada`\n- **note**: _empty_\n- **city**: _empty_\n", got)
}

func TestFieldList_EscapesMarkdown(t *testing.T) {
	got := FieldList("", []string{"a_b"}, []string{"x`y"})
	require.Equal(t, "- **a\\_b**: ``x`y``\n", got)
}

func TestCode(t *testing.T) {
	require.Equal(t, "`plain`", code("plain"))
	require.Equal(t, "`` `edge ``", code("`edge"))
}

func TestRenderer_Render(t *testing.T) {
	r, err := New(40, "notty")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())
	require.Equal(t, "notty", r.Style())

	out, err := r.Render(FieldList("details", []string{"name"}, []string{"Ada"}))
	require.NoError(t, err)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "details")
	require.Contains(t, plain, "Ada")
}

func TestNew_DefaultsToAuto(t *testing.T) {
	r, err := New(20, "")
	require.NoError(t, err)
	require.Equal(t, StyleAuto, r.Style())
}
