package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat_FieldsAndOrphanKey(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	got := format(ts, LevelDebug, CatPool, "created cell view", []any{"column", 3, "pool"})
	require.Equal(t, "2026-01-02T15:04:05 [DEBUG] [pool] created cell view column=3 pool=<missing>\n", got)
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "UNKNOWN", Level(9).String())
}

func TestWrite_RespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(InitWriter(&buf, Options{MinLevel: LevelWarn}))

	Debug(CatGrid, "hidden")
	Warn(CatGrid, "shown", "x", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [grid] shown x=1")
}

func TestWrite_FiltersCategories(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(InitWriter(&buf, Options{Categories: []Category{CatPool}}))

	Info(CatGrid, "scrolled")
	Info(CatPool, "created view")
	require.NotContains(t, buf.String(), "scrolled")
	require.Contains(t, buf.String(), "[pool] created view")
}

func TestCleanup_Uninstalls(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf, Options{})
	cleanup()

	Error(CatGrid, "after cleanup")
	require.Empty(t, buf.String())
	require.Nil(t, NewListener(context.Background()))
}

func TestErrorErr_AppendsError(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(InitWriter(&buf, Options{}))

	ErrorErr(CatData, "load failed", errors.New("no such file"), "path", "rows.csv")
	ErrorErr(CatData, "nil error", nil)

	require.Contains(t, buf.String(), "load failed path=rows.csv error=no such file")
	require.Contains(t, buf.String(), "nil error error=<nil>")
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(InitWriter(&buf, Options{}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatUI, "resized", "w", 80)

	evt, ok := listener.Listen()().(LogEvent)
	require.True(t, ok, "listener should yield a log event")
	require.Contains(t, evt.Payload, "[INFO] [ui] resized w=80")
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		in   string
		want []Category
	}{
		{"", nil},
		{"1", nil},
		{"all", nil},
		{"grid", []Category{CatGrid}},
		{" Grid , pool,", []Category{CatGrid, CatPool}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseCategories(tt.in), "input %q", tt.in)
	}
}

func TestDebugRequested(t *testing.T) {
	t.Setenv(EnvDebug, "")
	require.False(t, DebugRequested(false))
	require.True(t, DebugRequested(true))
	require.Empty(t, OptionsFromEnv().Categories)

	t.Setenv(EnvDebug, "reconcile")
	require.True(t, DebugRequested(false))
	require.Equal(t, []Category{CatReconcile}, OptionsFromEnv().Categories)
}
