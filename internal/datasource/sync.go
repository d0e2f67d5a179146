package datasource

import (
	"errors"

	"github.com/zjrosen/datagrid/internal/grid"
	"github.com/zjrosen/datagrid/internal/log"
)

// SyncResult counts the row changes Sync applied.
type SyncResult struct {
	Replaced int
	Added    int
	Removed  int
}

// Changed reports whether any change was applied.
func (r SyncResult) Changed() bool {
	return r.Replaced+r.Added+r.Removed > 0
}

// Sync makes dst hold src using row-level changes: differing rows are
// replaced in place, then the tail is appended or removed. Listener errors
// are joined and returned after all changes are applied.
func Sync(dst *grid.Collection[Record], src []Record) (SyncResult, error) {
	var (
		res  SyncResult
		errs []error
	)

	common := min(dst.Len(), len(src))
	for i := 0; i < common; i++ {
		if dst.At(i).Equal(src[i]) {
			continue
		}
		if err := dst.Replace(i, src[i]); err != nil {
			errs = append(errs, err)
		}
		res.Replaced++
	}

	switch {
	case len(src) > common:
		if err := dst.Append(src[common:]...); err != nil {
			errs = append(errs, err)
		}
		res.Added = len(src) - common
	case dst.Len() > common:
		res.Removed = dst.Len() - common
		if err := dst.RemoveRange(common, res.Removed); err != nil {
			errs = append(errs, err)
		}
	}

	if res.Changed() {
		log.Debug(log.CatData, "synced rows",
			"replaced", res.Replaced, "added", res.Added, "removed", res.Removed)
	}
	return res, errors.Join(errs...)
}
