package club

import (
	"context"

	"github.com/mauv0809/padel-ratings/internal/match"
)

// ClubStore defines the interface for interacting with the club's match history.
type ClubStore interface {
	AddMatch(ctx context.Context, rec match.Record) (match.Record, error)
	AddMatches(ctx context.Context, recs []match.Record) ([]match.Record, error)
	GetMatches(ctx context.Context) ([]match.Record, error)
	ReplaceMatches(ctx context.Context, recs []match.Record) error
	Clear(ctx context.Context) error
	ClearMatch(ctx context.Context, matchID string) error
	HasExternalID(ctx context.Context, externalID string) (bool, error)
	CountMatches(ctx context.Context) (int, error)
	GetPlayerNames(ctx context.Context) ([]string, error)
}
