package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datagrid/internal/watcher"
)

func watch(t *testing.T, path string) <-chan watcher.Change {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	changes, err := w.Watch(ctx)
	require.NoError(t, err, "failed to start watcher")
	return changes
}

func next(t *testing.T, changes <-chan watcher.Change) watcher.Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(time.Second):
		t.Fatal("expected a change but got timeout")
		return watcher.Change{}
	}
}

func quiet(t *testing.T, changes <-chan watcher.Change, msg string) {
	t.Helper()
	select {
	case c := <-changes:
		t.Fatalf("%s: got %+v", msg, c)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))
	changes := watch(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("name\nrow%d\n", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	c := next(t, changes)
	assert.Equal(t, path, c.Path)
	assert.True(t, c.Op.Has(fsnotify.Write))
	assert.GreaterOrEqual(t, c.Events, 2, "writes were merged")
	assert.False(t, c.Removed())

	quiet(t, changes, "unexpected second change")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))
	changes := watch(t, path)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))
	quiet(t, changes, "should not report unrelated files")
}

func TestWatcher_SeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))
	changes := watch(t, path)

	tmp := filepath.Join(dir, ".people.csv.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("name\nada\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	next(t, changes)
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))
	changes := watch(t, path)

	require.NoError(t, os.Remove(path))
	assert.True(t, next(t, changes).Removed())
}

func TestWatcher_WatchesSQLiteSideFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.db")
	require.NoError(t, os.WriteFile(path, []byte("db"), 0o644))
	changes := watch(t, path)

	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal data"), 0o644))
	assert.Equal(t, path, next(t, changes).Path, "side files report the database path")
}

func TestWatcher_ClosesChannelOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := w.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-changes:
		require.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop on cancel")
	}
}

func TestWatcher_ClosesChannelOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	changes, err := w.Watch(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-changes:
		require.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop on Close")
	}
}

func TestWatcher_FailsForMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "x.csv")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	_, err = w.Watch(context.Background())
	require.ErrorContains(t, err, "watching directory")
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/data/people.csv")
	assert.Equal(t, "/data/people.csv", cfg.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}
