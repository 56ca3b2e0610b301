package rating

import (
	"time"

	"github.com/mauv0809/padel-ratings/internal/match"
)

const (
	DefaultInitialElo = 1000.0
	DefaultKFactor    = 32.0
)

// Gaussian is a skill belief: mean Mu with uncertainty Sigma.
type Gaussian struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
}

// Conservative is the lower-confidence-bound score Mu - 3*Sigma.
func (g Gaussian) Conservative() float64 {
	return g.Mu - 3*g.Sigma
}

// EloRating is a player's Elo after replaying the history.
type EloRating struct {
	Player  string  `json:"player"`
	Elo     float64 `json:"elo"`
	Matches int     `json:"matches"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
}

// EloPoint is one player's rating right after one match.
type EloPoint struct {
	Match  int       `json:"match"`
	Date   time.Time `json:"date"`
	Player string    `json:"player"`
	Elo    float64   `json:"elo"`
	Delta  float64   `json:"delta"`
}

// Upset is a match won by the team with the lower pre-match Elo.
type Upset struct {
	Match        match.Record `json:"match"`
	WinnerRating float64      `json:"winnerRating"`
	LoserRating  float64      `json:"loserRating"`
	Gap          float64      `json:"gap"`
}

// EloResult is everything produced by one Elo replay.
type EloResult struct {
	Ratings []EloRating `json:"ratings"`
	History []EloPoint  `json:"history"`
	Upsets  []Upset     `json:"upsets"`
}

// SkillRating is a player's published Bayesian rating.
type SkillRating struct {
	Player       string  `json:"player"`
	Mu           float64 `json:"mu"`
	Sigma        float64 `json:"sigma"`
	Conservative float64 `json:"conservative"`
}
