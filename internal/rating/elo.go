package rating

import (
	"math"
	"sort"

	"github.com/mauv0809/padel-ratings/internal/match"
)

// EloEngine replays a match history into team-average Elo ratings.
type EloEngine struct {
	initial float64
	k       float64
}

type eloState struct {
	elo     float64
	matches int
	wins    int
}

// NewEloEngine creates an engine seeding players at initial with K-factor k.
func NewEloEngine(initial, k float64) *EloEngine {
	return &EloEngine{initial: initial, k: k}
}

// ExpectedScore is the probability that a side rated rating beats a side
// rated opponent.
func ExpectedScore(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// Compute returns final ratings ordered by Elo descending.
func (e *EloEngine) Compute(records []match.Record) []EloRating {
	return e.Replay(records).Ratings
}

// Replay runs the history in chronological order, one match at a time. Each
// match depends on every earlier one, so this cannot be split up.
func (e *EloEngine) Replay(records []match.Record) EloResult {
	store := NewStore(func(string) eloState { return eloState{elo: e.initial} })
	result := EloResult{
		History: make([]EloPoint, 0, len(records)*4),
		Upsets:  make([]Upset, 0),
	}

	for i, rec := range match.Chronological(records) {
		t1 := []*eloState{store.GetOrCreate(rec.Team1.A), store.GetOrCreate(rec.Team1.B)}
		t2 := []*eloState{store.GetOrCreate(rec.Team2.A), store.GetOrCreate(rec.Team2.B)}

		r1 := (t1[0].elo + t1[1].elo) / 2
		r2 := (t2[0].elo + t2[1].elo) / 2

		actual1 := 0.0
		if rec.Winner == match.Team1 {
			actual1 = 1.0
		}
		delta1 := e.k * (actual1 - ExpectedScore(r1, r2))
		// team 2's expected and actual scores are the complements of team 1's.
		delta2 := -delta1

		winnerRating, loserRating := r1, r2
		if rec.Winner == match.Team2 {
			winnerRating, loserRating = r2, r1
		}
		if winnerRating < loserRating {
			result.Upsets = append(result.Upsets, Upset{
				Match:        rec,
				WinnerRating: winnerRating,
				LoserRating:  loserRating,
				Gap:          loserRating - winnerRating,
			})
		}

		apply := func(team match.Team, states []*eloState, delta float64, won bool) {
			for j, p := range team.Players() {
				s := states[j]
				s.elo += delta
				s.matches++
				if won {
					s.wins++
				}
				result.History = append(result.History, EloPoint{
					Match:  i,
					Date:   rec.Date,
					Player: p,
					Elo:    s.elo,
					Delta:  delta,
				})
			}
		}
		apply(rec.Team1, t1, delta1, rec.Winner == match.Team1)
		apply(rec.Team2, t2, delta2, rec.Winner == match.Team2)
	}

	result.Ratings = make([]EloRating, 0, store.Len())
	for _, p := range store.Players() {
		s, _ := store.Get(p)
		result.Ratings = append(result.Ratings, EloRating{
			Player:  p,
			Elo:     s.elo,
			Matches: s.matches,
			Wins:    s.wins,
			Losses:  s.matches - s.wins,
		})
	}
	sort.Slice(result.Ratings, func(i, j int) bool {
		if result.Ratings[i].Elo != result.Ratings[j].Elo {
			return result.Ratings[i].Elo > result.Ratings[j].Elo
		}
		return result.Ratings[i].Player < result.Ratings[j].Player
	})
	sort.SliceStable(result.Upsets, func(i, j int) bool {
		return result.Upsets[i].Gap > result.Upsets[j].Gap
	})
	return result
}

// HistoryFor filters history down to one player's points.
func HistoryFor(history []EloPoint, player string) []EloPoint {
	out := make([]EloPoint, 0)
	for _, p := range history {
		if p.Player == player {
			out = append(out, p)
		}
	}
	return out
}
