package notifier

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly recorded matches
	SendResultNotification(ctx context.Context, rec match.Record, lb ranking.Leaderboard, dryRun bool) error
	// For slash commands and scheduled posts
	SendLeaderboard(ctx context.Context, lb ranking.Leaderboard, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(lb ranking.Leaderboard) (any, error)
	FormatPlayerStatsResponse(profile dashboard.PlayerProfile) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}

// Noop is used when no notification channel is configured. It only logs.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendResultNotification(_ context.Context, rec match.Record, _ ranking.Leaderboard, _ bool) error {
	log.Debug("Notifications disabled, not announcing match", "id", rec.ID)
	return nil
}

func (Noop) SendLeaderboard(_ context.Context, _ ranking.Leaderboard, _ bool) error {
	log.Debug("Notifications disabled, not posting leaderboard")
	return nil
}

func (Noop) FormatLeaderboardResponse(lb ranking.Leaderboard) (any, error) {
	return lb, nil
}

func (Noop) FormatPlayerStatsResponse(profile dashboard.PlayerProfile) (any, error) {
	return profile, nil
}

func (Noop) FormatPlayerNotFoundResponse(query string) (any, error) {
	return map[string]string{"error": "player not found", "query": query}, nil
}
