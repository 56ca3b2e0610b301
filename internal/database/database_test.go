package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"matches", "metrics", "goose_db_version"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padel.db")

	db, teardown, err := InitDB(path, "", "")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO metrics (key, value) VALUES ('kept', 3)`)
	require.NoError(t, err)
	teardown()

	db, teardown, err = InitDB(path, "", "")
	require.NoError(t, err, "Migrating an up to date database should be a no-op")
	defer teardown()

	var value int
	require.NoError(t, db.QueryRow(`SELECT value FROM metrics WHERE key = 'kept'`).Scan(&value))
	assert.Equal(t, 3, value)
}
