package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	syncRuns         int
	recorded         map[string]int
	rejected         int
	ratingDurations  []float64
	historySize      int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recorded:        make(map[string]int),
		ratingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSyncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncRuns++
}

func (m *Mock) IncMatchesRecorded(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded[source]++
}

func (m *Mock) IncMatchesRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected++
}

func (m *Mock) ObserveRatingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingDurations = append(m.ratingDurations, duration)
}

func (m *Mock) SetHistorySize(matches int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historySize = matches
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SyncRuns returns the number of times IncSyncRuns was called.
func (m *Mock) SyncRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncRuns
}

// MatchesRecorded returns how many matches were recorded from source.
func (m *Mock) MatchesRecorded(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recorded[source]
}

func (m *Mock) MatchesRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejected
}

// RatingComputations returns the number of observed rating recomputations.
func (m *Mock) RatingComputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ratingDurations)
}

func (m *Mock) HistorySize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.historySize
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockStore is an in-memory MetricsStore.
type MockStore struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMockStore() *MockStore {
	return &MockStore{counts: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(counterKeys))
	for _, k := range counterKeys {
		out[k] = 0
	}
	for k, v := range m.counts {
		out[k] = v
	}
	return out, nil
}

// Get returns the current value of key.
func (m *MockStore) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}
