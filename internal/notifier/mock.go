package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/ranking"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendResultNotificationFunc func(rec match.Record, lb ranking.Leaderboard, dryRun bool) error
	SendLeaderboardFunc        func(lb ranking.Leaderboard, dryRun bool) error

	// Call records
	SendResultNotificationCalls []struct {
		Record      match.Record
		Leaderboard ranking.Leaderboard
		DryRun      bool
	}
	SendLeaderboardCalls []ranking.Leaderboard

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendResultNotification(_ context.Context, rec match.Record, lb ranking.Leaderboard, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Record      match.Record
		Leaderboard ranking.Leaderboard
		DryRun      bool
	}{rec, lb, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(rec, lb, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(_ context.Context, lb ranking.Leaderboard, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, lb)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(lb, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(lb ranking.Leaderboard) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := map[string]any{"text": "leaderboard", "entries": len(lb.Entries)}
	m.LastLeaderboardResponse = resp
	return resp, nil
}

func (m *Mock) FormatPlayerStatsResponse(profile dashboard.PlayerProfile) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := map[string]any{"text": "stats", "player": profile.Player}
	m.LastPlayerStatsResponse = resp
	return resp, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := map[string]any{"text": "not found", "query": query}
	m.LastPlayerNotFoundResponse = resp
	return resp, nil
}
