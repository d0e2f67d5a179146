package watcher

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	w, err := New(DefaultConfig("/data/sales.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "/data/sales.db", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "/data/sales.db", Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: "/data/sales.db", Op: fsnotify.Rename}, true},
		{"remove", fsnotify.Event{Name: "/data/sales.db", Op: fsnotify.Remove}, true},
		{"wal", fsnotify.Event{Name: "/data/sales.db-wal", Op: fsnotify.Write}, true},
		{"journal", fsnotify.Event{Name: "/data/sales.db-journal", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "/data/sales.db", Op: fsnotify.Chmod}, false},
		{"sibling", fsnotify.Event{Name: "/data/other.db", Op: fsnotify.Write}, false},
		{"shm", fsnotify.Event{Name: "/data/sales.db-shm", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, w.relevant(tt.ev))
		})
	}
}
