package stats

import "github.com/mauv0809/padel-ratings/internal/match"

// DefaultRecentLimit is the number of matches kept in Aggregates.Recent.
const DefaultRecentLimit = 10

// PlayerAggregate represents a player's cumulative results for the leaderboard.
type PlayerAggregate struct {
	Player    string  `json:"player"`
	Matches   int     `json:"matches"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`
	SetsWon   int     `json:"setsWon"`
	SetsLost  int     `json:"setsLost"`
	GamesWon  int     `json:"gamesWon"`
	GamesLost int     `json:"gamesLost"`
}

// Aggregates is the output of one pass over the match history.
type Aggregates struct {
	Ranked  []PlayerAggregate `json:"ranked"`
	Recent  []match.Record    `json:"recent"`
	Players []string          `json:"players"`
}

// Partnership is the combined record of two players on the same side.
type Partnership struct {
	Players [2]string `json:"players"`
	Matches int       `json:"matches"`
	Wins    int       `json:"wins"`
	Losses  int       `json:"losses"`
	WinRate float64   `json:"winRate"`
}
