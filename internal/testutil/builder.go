package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder accumulates fixture rows and inserts them in order.
type Builder struct {
	t       *testing.T
	db      *sql.DB
	records []recordData
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithRecord adds a row with optional configuration.
func (b *Builder) WithRecord(id string, opts ...RecordOption) *Builder {
	r := defaultRecord(id)
	for _, opt := range opts {
		opt(&r)
	}
	b.records = append(b.records, r)
	return b
}

// Build inserts all accumulated rows.
func (b *Builder) Build() {
	b.t.Helper()
	for _, r := range b.records {
		_, err := b.db.Exec(
			`INSERT INTO records (id, name, city, score, note) VALUES (?, ?, ?, ?, ?)`,
			r.id, r.name, r.city, r.score, r.note,
		)
		require.NoError(b.t, err, "inserting record %s", r.id)
	}
}
