package processor

import (
	"context"

	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/notifier"
	"github.com/mauv0809/padel-ratings/internal/ranking"
)

// Store defines the history operations required by the processor.
type Store interface {
	AddMatch(ctx context.Context, rec match.Record) (match.Record, error)
	AddMatches(ctx context.Context, recs []match.Record) ([]match.Record, error)
	ReplaceMatches(ctx context.Context, recs []match.Record) error
	HasExternalID(ctx context.Context, externalID string) (bool, error)
	GetPlayerNames(ctx context.Context) ([]string, error)
}

// Board provides the current leaderboard for result notifications.
type Board interface {
	Leaderboard(ctx context.Context) (ranking.Leaderboard, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
