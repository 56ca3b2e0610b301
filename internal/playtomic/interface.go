package playtomic

import "context"

// PlaytomicClient defines the interface for interacting with the Playtomic API.
type PlaytomicClient interface {
	GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error)
}
