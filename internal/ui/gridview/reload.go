package gridview

import (
	"fmt"
	"slices"

	"github.com/zjrosen/datagrid/internal/datasource"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/pubsub"
)

// handleReload applies a fresh load to the bound row collection. Rows are
// synced in place so the grid sees row-level changes; a changed field list
// also rebuilds the columns.
func (m *Model) handleReload(ev pubsub.Event[datasource.Reload]) {
	switch ev.Type {
	case pubsub.ReloadFailedEvent:
		m.setError("reload failed", ev.Payload.Err)
		return
	case pubsub.ReloadedEvent:
	default:
		return
	}

	fresh := ev.Payload.Table
	if fresh == nil {
		return
	}

	fieldsChanged := !slices.Equal(m.table.Fields, fresh.Fields)
	m.table.Fields = fresh.Fields

	res, err := datasource.Sync(m.table.Rows, fresh.Rows.Items())
	if err != nil {
		m.setError("applying reload", err)
		return
	}
	if fieldsChanged {
		if err := m.applyColumns(); err != nil {
			m.setError("rebuilding columns", err)
			return
		}
		log.Info(log.CatUI, "fields changed, columns rebuilt", "fields", len(fresh.Fields))
	}

	if !res.Changed() && !fieldsChanged {
		m.setStatus("reloaded, no changes")
		return
	}
	m.setStatus(fmt.Sprintf("reloaded: %d changed, %d added, %d removed", res.Replaced, res.Added, res.Removed))
}
