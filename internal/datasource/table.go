// Package datasource loads tabular datasets into grid row collections and
// keeps them in step with their files.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/datagrid/internal/grid"
	"github.com/zjrosen/datagrid/internal/log"
	"github.com/zjrosen/datagrid/internal/tracing"
)

// Kind names a dataset backend.
type Kind string

const (
	KindCSV      Kind = "csv"
	KindSQLite   Kind = "sqlite"
	KindGenerate Kind = "generate"
)

// Record is one dataset row. Values line up with the table's Fields.
type Record struct {
	ID     string
	Values []string
}

// Value returns the i-th value, or "" when the record is short.
func (r Record) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Equal reports whether two records carry the same id and values.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID && slices.Equal(r.Values, o.Values)
}

// Table is a loaded dataset.
type Table struct {
	Fields []string
	Rows   *grid.Collection[Record]
}

// NewTable wraps records in an observable row collection.
func NewTable(fields []string, records []Record) *Table {
	return &Table{
		Fields: fields,
		Rows:   grid.NewCollection(records...),
	}
}

// FieldIndex returns the position of name, compared case-insensitively, or -1.
func (t *Table) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if strings.EqualFold(f, name) {
			return i
		}
	}
	return -1
}

// ErrNoQuery is returned when a SQLite source has no query.
var ErrNoQuery = errors.New("sqlite source requires a query")

// Source describes where a dataset comes from.
type Source struct {
	Kind  Kind
	Path  string
	Query string
	Rows  int
	Seed  uint64

	// Tracer records a span per load. Nil means no tracing.
	Tracer trace.Tracer
}

// Watchable reports whether the source is backed by a file.
func (s Source) Watchable() bool {
	return s.Kind == KindCSV || s.Kind == KindSQLite
}

func (s Source) String() string {
	switch s.Kind {
	case KindGenerate:
		return fmt.Sprintf("generate(%d, seed=%d)", s.Rows, s.Seed)
	default:
		return string(s.Kind) + ":" + s.Path
	}
}

// Load reads the dataset.
func (s Source) Load(ctx context.Context) (*Table, error) {
	var table *Table
	err := tracing.Run(ctx, s.Tracer, tracing.SpanPrefixData+"load", func(ctx context.Context) error {
		var err error
		switch s.Kind {
		case KindCSV:
			table, err = LoadCSV(s.Path)
		case KindSQLite:
			table, err = LoadSQLite(ctx, s.Path, s.Query)
		case KindGenerate:
			table = Generate(s.Rows, s.Seed)
		default:
			err = fmt.Errorf("unknown data source %q", s.Kind)
		}
		if err != nil {
			return err
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int(tracing.AttrDataRows, table.Rows.Len()))
		return nil
	},
		attribute.String(tracing.AttrDataSource, string(s.Kind)),
		attribute.String(tracing.AttrDataPath, s.Path),
	)
	if err != nil {
		log.ErrorErr(log.CatData, "load failed", err, "source", s.String())
		return nil, err
	}
	log.Info(log.CatData, "loaded", "source", s.String(), "rows", table.Rows.Len(), "fields", len(table.Fields))
	return table, nil
}

// idFor picks the record id: the value of an "id" field when the dataset
// has one, otherwise the 1-based row number.
func idFor(idField int, values []string, row int) string {
	if idField >= 0 && idField < len(values) && values[idField] != "" {
		return values[idField]
	}
	return fmt.Sprintf("row-%d", row+1)
}

func findIDField(fields []string) int {
	for i, f := range fields {
		if strings.EqualFold(strings.TrimSpace(f), "id") {
			return i
		}
	}
	return -1
}
