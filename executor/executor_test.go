package executor

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixtureDB creates a throwaway SQLite database with a small users table.
func newFixtureDB(t *testing.T) ConnectionConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, name, email) VALUES
		(1, 'Ada', 'ada@example.com'),
		(2, 'Grace', NULL)`)
	require.NoError(t, err)

	return ConnectionConfig{Type: "sqlite", Database: path}
}

func TestExecuteQuery(t *testing.T) {
	cfg := newFixtureDB(t)

	rs, err := ExecuteQuery(context.Background(), cfg, "SELECT id, name, email FROM users ORDER BY id")
	require.NoError(t, err)

	assert.Equal(t, 2, rs.RowCount)
	assert.Equal(t, []string{"id", "name", "email"}, rs.Fields)
	assert.Len(t, rs.Rows, 2)
	assert.Equal(t, "Ada", rs.Rows[0]["name"])
	assert.Nil(t, rs.Rows[1]["email"])
}

func TestExecuteQueryEmptyResult(t *testing.T) {
	cfg := newFixtureDB(t)

	rs, err := ExecuteQuery(context.Background(), cfg, "SELECT id FROM users WHERE id > 100")
	require.NoError(t, err)
	assert.Equal(t, 0, rs.RowCount)
	assert.Empty(t, rs.Rows)
	assert.Equal(t, []string{"id"}, rs.Fields)
}

func TestExecuteQueryBadStatement(t *testing.T) {
	cfg := newFixtureDB(t)

	_, err := ExecuteQuery(context.Background(), cfg, "SELECT nope FROM missing_table")
	require.Error(t, err)
	var qErr *QueryError
	assert.ErrorAs(t, err, &qErr)
}

func TestExecuteQueryUnsupportedEngine(t *testing.T) {
	_, err := ExecuteQuery(context.Background(), ConnectionConfig{Type: "access"}, "SELECT 1")
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestTestConnection(t *testing.T) {
	cfg := newFixtureDB(t)
	assert.NoError(t, TestConnection(context.Background(), cfg))
}

func TestTestConnectionFailure(t *testing.T) {
	// A directory that does not exist makes the sqlite open fail at ping.
	cfg := ConnectionConfig{Type: "sqlite", Database: "/nonexistent-dir/never/made.db"}
	err := TestConnection(context.Background(), cfg)
	require.Error(t, err)
	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}
