package metrics

import (
	"path/filepath"
	"testing"

	"github.com/mauv0809/padel-ratings/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyMatchesRecorded:  0,
		KeyMatchesImported:  0,
		KeyMatchesSynced:    0,
		KeySlackResultsSent: 0,
	}, counters, "every counter is reported before its first bump")

	store.Increment(KeyMatchesRecorded)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, counters[KeyMatchesRecorded])

	store.Increment(KeyMatchesRecorded)
	store.Increment(KeySlackResultsSent)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyMatchesRecorded:  2,
		KeyMatchesImported:  0,
		KeyMatchesSynced:    0,
		KeySlackResultsSent: 1,
	}, counters)
}

func TestIncrementIgnoresUnknownCounter(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	store.Increment("players_created")
	store.Increment(KeyMatchesSynced)

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.NotContains(t, counters, "players_created")
	assert.Equal(t, 1, counters[KeyMatchesSynced])
	assert.Len(t, counters, 4)
}

func TestGetAllSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.db")

	db, teardown, err := database.InitDB(path, "", "")
	require.NoError(t, err)
	New(db).Increment(KeyMatchesImported)
	New(db).Increment(KeyMatchesImported)
	teardown()

	db, teardown, err = database.InitDB(path, "", "")
	require.NoError(t, err)
	defer teardown()

	counters, err := New(db).GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, counters[KeyMatchesImported])
}
