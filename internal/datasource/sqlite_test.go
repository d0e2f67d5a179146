package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datagrid/internal/testutil"
)

func TestLoadSQLite_ScansEveryColumnAsText(t *testing.T) {
	db, path := testutil.NewTestDB(t)
	testutil.NewBuilder(t, db).WithStandardRecords().Build()

	table, err := LoadSQLite(context.Background(), path,
		"SELECT id, name, city, score, note FROM records ORDER BY id")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "city", "score", "note"}, table.Fields)
	require.Equal(t, 4, table.Rows.Len())

	require.Equal(t, Record{
		ID:     "r1",
		Values: []string{"r1", "Ada Lovelace", "London", "92", "first"},
	}, table.Rows.At(0))
	require.Equal(t, []string{"r3", "Alan Turing", "", "95", "enigma"}, table.Rows.At(2).Values, "NULL city is empty")
	require.Equal(t, "-1", table.Rows.At(3).Value(3))
}

func TestLoadSQLite_RequiresQuery(t *testing.T) {
	_, path := testutil.NewTestDB(t)

	_, err := LoadSQLite(context.Background(), path, "")
	require.ErrorIs(t, err, ErrNoQuery)
}

func TestLoadSQLite_BadQuery(t *testing.T) {
	_, path := testutil.NewTestDB(t)

	_, err := LoadSQLite(context.Background(), path, "SELECT * FROM missing_table")
	require.Error(t, err)
}

func TestLoadSQLite_OpensReadOnly(t *testing.T) {
	db, path := testutil.NewTestDB(t)
	testutil.NewBuilder(t, db).WithStandardRecords().Build()

	_, err := LoadSQLite(context.Background(), path, "DELETE FROM records")
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count))
	require.Equal(t, 4, count)
}

func TestSource_LoadSQLite(t *testing.T) {
	db, path := testutil.NewTestDB(t)
	testutil.NewBuilder(t, db).WithRecord("only", testutil.Name("One")).Build()

	src := Source{Kind: KindSQLite, Path: path, Query: "SELECT id, name FROM records"}
	require.True(t, src.Watchable())

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, table.Rows.Len())
	require.Equal(t, "only", table.Rows.At(0).ID)
}
