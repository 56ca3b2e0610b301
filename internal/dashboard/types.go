package dashboard

import (
	"errors"

	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/ranking"
	"github.com/mauv0809/padel-ratings/internal/rating"
	"github.com/mauv0809/padel-ratings/internal/stats"
)

// ErrPlayerNotFound is returned when a player has no matches in the history.
var ErrPlayerNotFound = errors.New("player not found")

// Data is everything shown on the dashboard, computed from one read of the history.
type Data struct {
	Leaderboard    ranking.Leaderboard  `json:"leaderboard"`
	Stats          stats.Aggregates     `json:"stats"`
	Elo            []rating.EloRating   `json:"elo"`
	Skill          []rating.SkillRating `json:"skill"`
	SkillAvailable bool                 `json:"skillAvailable"`
	Partnerships   []stats.Partnership  `json:"partnerships"`
	CloseMatches   []match.Record       `json:"closeMatches"`
	Upsets         []rating.Upset       `json:"upsets"`
}

// PlayerProfile is one player's line from every ranking.
type PlayerProfile struct {
	Player    string                `json:"player"`
	Aggregate stats.PlayerAggregate `json:"aggregate"`
	Elo       *rating.EloRating     `json:"elo,omitempty"`
	Skill     *rating.SkillRating   `json:"skill,omitempty"`
	Rank      int                   `json:"rank,omitempty"`
	Partners  []stats.Partnership   `json:"partners"`
}

// Options tune what Build returns.
type Options struct {
	RecentLimit           int
	MinPartnershipMatches int
	InsightLimit          int
}

// DefaultOptions mirrors the defaults of the config package.
func DefaultOptions() Options {
	return Options{
		RecentLimit:           stats.DefaultRecentLimit,
		MinPartnershipMatches: 2,
		InsightLimit:          10,
	}
}
