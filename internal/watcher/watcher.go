// Package watcher reports debounced changes to a dataset file.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/datagrid/internal/log"
)

// Config holds watcher options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig watches path with a 500ms debounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 500 * time.Millisecond}
}

// Change describes one settled burst of file activity.
type Change struct {
	Path string
	// Op is every operation seen during the burst.
	Op fsnotify.Op
	// Events counts the raw notifications merged into this change.
	Events int
}

// Removed reports whether the file went away during the burst. A file that
// was removed and then recreated still reports true.
func (c Change) Removed() bool {
	return c.Op.Has(fsnotify.Remove)
}

// Watcher monitors one file. SQLite writes land in -wal and -journal side
// files first, so those count as changes to the file too.
type Watcher struct {
	fs    *fsnotify.Watcher
	cfg   Config
	names map[string]bool
}

// New creates a watcher. Nothing is watched until Watch.
func New(cfg Config) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	base := filepath.Base(cfg.Path)
	return &Watcher{
		fs:  fs,
		cfg: cfg,
		names: map[string]bool{
			base:              true,
			base + "-wal":     true,
			base + "-journal": true,
		},
	}, nil
}

// Watch watches the file's directory, so replacing the file by rename is
// seen too. One Change is sent per burst of activity that stays quiet for
// the debounce interval. The channel is closed when ctx is done or the
// watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	dir := filepath.Dir(w.cfg.Path)
	if err := w.fs.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "path", w.cfg.Path, "debounce", w.cfg.Debounce)

	out := make(chan Change, 1)
	go w.loop(ctx, out)
	return out, nil
}

// Close releases the underlying watch.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) loop(ctx context.Context, out chan<- Change) {
	defer close(out)

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	var pending Change
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending.Path = w.cfg.Path
			pending.Op |= event.Op
			pending.Events++
			timer.Reset(w.cfg.Debounce)

		case <-timer.C:
			if pending.Events == 0 {
				continue
			}
			select {
			case out <- pending:
				log.Debug(log.CatWatcher, "change", "path", pending.Path, "op", pending.Op, "events", pending.Events)
			default:
				log.Debug(log.CatWatcher, "change coalesced", "path", pending.Path)
			}
			pending = Change{}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.cfg.Path)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return w.names[filepath.Base(event.Name)]
}
