package datasource

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/pubsub"
	"github.com/zjrosen/datagrid/internal/watcher"
)

// ErrSourceRemoved is reported when the watched dataset file disappears.
var ErrSourceRemoved = errors.New("data file was removed")

// Reload is the payload of a reload event. Table is nil when Err is set.
type Reload struct {
	Source string
	Table  *Table
	Err    error
}

// LoadFunc loads a fresh copy of a dataset.
type LoadFunc func(ctx context.Context) (*Table, error)

// Reloader reloads a dataset whenever its file changes and publishes the
// result. Loading happens on the reloader's goroutine; applying the result
// to a grid is left to the subscriber.
type Reloader struct {
	name      string
	load      LoadFunc
	publisher pubsub.Publisher[Reload]
	reloads   atomic.Int64
}

// NewReloader publishes every load of name on publisher.
func NewReloader(name string, load LoadFunc, publisher pubsub.Publisher[Reload]) *Reloader {
	return &Reloader{name: name, load: load, publisher: publisher}
}

// Run reloads once per file change until ctx is done or changes is
// closed. A removal that was not followed by a new file is published as a
// failure without loading, so the grid keeps its last rows.
func (r *Reloader) Run(ctx context.Context, changes <-chan watcher.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			if c.Removed() && !exists(c.Path) {
				log.Warn(log.CatData, "data file removed", "source", r.name, "path", c.Path)
				r.publisher.Publish(pubsub.ReloadFailedEvent, Reload{Source: r.name, Err: ErrSourceRemoved})
				continue
			}
			r.Reload(ctx)
		}
	}
}

// Reload loads the dataset now and publishes the outcome.
func (r *Reloader) Reload(ctx context.Context) {
	n := r.reloads.Add(1)
	table, err := r.load(ctx)
	if err != nil {
		log.ErrorErr(log.CatData, "reload failed", err, "source", r.name, "reload", n)
		r.publisher.Publish(pubsub.ReloadFailedEvent, Reload{Source: r.name, Err: err})
		return
	}
	log.Debug(log.CatData, "reloaded", "source", r.name, "reload", n, "rows", table.Rows.Len())
	r.publisher.Publish(pubsub.ReloadedEvent, Reload{Source: r.name, Table: table})
}

// Count returns how many reloads have been attempted.
func (r *Reloader) Count() int64 {
	return r.reloads.Load()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
