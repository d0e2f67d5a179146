package datasource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/datagrid/internal/log"
)

// LoadSQLite runs query against the database at path, opened read-only.
// Every column is scanned as text and NULL becomes "".
func LoadSQLite(ctx context.Context, path, query string) (*Table, error) {
	if query == "" {
		return nil, ErrNoQuery
	}

	log.Debug(log.CatData, "opening database", "path", path)
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fields, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	idField := findIDField(fields)
	scratch := make([]sql.NullString, len(fields))
	dest := make([]any, len(fields))
	for i := range scratch {
		dest[i] = &scratch[i]
	}

	var records []Record
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(records)+1, err)
		}
		values := make([]string, len(fields))
		for i, v := range scratch {
			if v.Valid {
				values[i] = v.String
			}
		}
		records = append(records, Record{
			ID:     idFor(idField, values, len(records)),
			Values: values,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return NewTable(fields, records), nil
}
