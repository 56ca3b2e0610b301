package club

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/mauv0809/padel-ratings/internal/match"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is an in-memory ClubStore for testing. Each method can be
// overridden with its ...Func field; otherwise it behaves like the real store.
// It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	records []match.Record
	nextID  int

	// Spies for method calls
	AddMatchFunc       func(rec match.Record) (match.Record, error)
	AddMatchesFunc     func(recs []match.Record) ([]match.Record, error)
	GetMatchesFunc     func() ([]match.Record, error)
	ReplaceMatchesFunc func(recs []match.Record) error
	ClearFunc          func() error
	ClearMatchFunc     func(matchID string) error

	// Call records
	AddMatchCalls       []match.Record
	AddMatchesCalls     [][]match.Record
	ReplaceMatchesCalls [][]match.Record
	ClearCalls          int
	ClearMatchCalls     []string
}

// NewMock creates a new mock instance holding records.
func NewMock(records ...match.Record) *MockStore {
	return &MockStore{records: append([]match.Record(nil), records...)}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddMatchCalls = nil
	m.AddMatchesCalls = nil
	m.ReplaceMatchesCalls = nil
	m.ClearCalls = 0
	m.ClearMatchCalls = nil
}

func (m *MockStore) AddMatch(_ context.Context, rec match.Record) (match.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddMatchCalls = append(m.AddMatchCalls, rec)
	if m.AddMatchFunc != nil {
		return m.AddMatchFunc(rec)
	}
	rec = m.assignID(rec)
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *MockStore) AddMatches(_ context.Context, recs []match.Record) ([]match.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddMatchesCalls = append(m.AddMatchesCalls, recs)
	if m.AddMatchesFunc != nil {
		return m.AddMatchesFunc(recs)
	}
	stored := make([]match.Record, 0, len(recs))
	for _, rec := range recs {
		rec = m.assignID(rec)
		m.records = append(m.records, rec)
		stored = append(stored, rec)
	}
	return stored, nil
}

func (m *MockStore) GetMatches(_ context.Context) ([]match.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc()
	}
	return match.Chronological(m.records), nil
}

func (m *MockStore) ReplaceMatches(_ context.Context, recs []match.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceMatchesCalls = append(m.ReplaceMatchesCalls, recs)
	if m.ReplaceMatchesFunc != nil {
		return m.ReplaceMatchesFunc(recs)
	}
	m.records = make([]match.Record, 0, len(recs))
	for _, rec := range recs {
		m.records = append(m.records, m.assignID(rec))
	}
	return nil
}

func (m *MockStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.records = nil
	return nil
}

func (m *MockStore) ClearMatch(_ context.Context, matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		return m.ClearMatchFunc(matchID)
	}
	for i, rec := range m.records {
		if rec.ID == matchID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return ErrMatchNotFound
}

func (m *MockStore) HasExternalID(_ context.Context, externalID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ExternalID != "" && rec.ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) CountMatches(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *MockStore) GetPlayerNames(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, rec := range m.records {
		for _, p := range rec.Players() {
			if !seen[p] {
				seen[p] = true
				names = append(names, p)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStore) assignID(rec match.Record) match.Record {
	if rec.ID == "" {
		m.nextID++
		rec.ID = "mock-" + strconv.Itoa(m.nextID)
	}
	if rec.Source == "" {
		rec.Source = match.SourceManual
	}
	return rec
}
