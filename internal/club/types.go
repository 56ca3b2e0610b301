package club

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	// ErrMatchNotFound is returned when clearing a match id the store does not hold.
	ErrMatchNotFound = errors.New("match not found")
	// ErrCorruptMatch wraps a stored row that no longer parses as a match.
	ErrCorruptMatch = errors.New("corrupt stored match")
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Suggestion is an existing player whose name looks like a new one.
type Suggestion struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}
