package metrics

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// counterKeys lists every lifetime counter the club keeps.
var counterKeys = []string{
	KeyMatchesRecorded,
	KeyMatchesImported,
	KeyMatchesSynced,
	KeySlackResultsSent,
}

func isCounterKey(key string) bool {
	for _, k := range counterKeys {
		if k == key {
			return true
		}
	}
	return false
}

// counterStore keeps lifetime activity counters in the metrics table.
// Unlike the Prometheus series these survive restarts and redeploys.
type counterStore struct {
	db *sql.DB
	mu sync.Mutex
}

// New returns a MetricsStore backed by db.
func New(db *sql.DB) MetricsStore {
	return &counterStore{db: db}
}

// Increment bumps one of the lifetime counters. Failures are logged, never returned.
func (s *counterStore) Increment(key string) {
	if !isCounterKey(key) {
		log.Warn("Ignoring unknown activity counter", "key", key)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1`, key)
	if err != nil {
		log.Error("Failed to bump activity counter", "key", key, "error", err)
		return
	}
	log.Debug("Bumped activity counter", "key", key)
}

// GetAll reports every lifetime counter, with zero for those never bumped.
func (s *counterStore) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key, value FROM metrics`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int, len(counterKeys))
	for _, k := range counterKeys {
		counters[k] = 0
	}
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan activity counter: %w", err)
		}
		if isCounterKey(key) {
			counters[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity counters: %w", err)
	}
	return counters, nil
}
