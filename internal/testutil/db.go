// Package testutil provides dataset fixtures for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema is the fixture database schema.
const Schema = `
CREATE TABLE records (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	city TEXT,
	score INTEGER NOT NULL DEFAULT 0,
	note TEXT
);
`

// NewTestDB creates a SQLite database file with the fixture schema under a
// test temp dir and returns the open handle and its path. The handle is
// closed when the test ends.
func NewTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db, path
}
