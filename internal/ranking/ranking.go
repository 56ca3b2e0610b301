package ranking

import (
	"sort"

	"github.com/mauv0809/padel-ratings/internal/rating"
	"github.com/mauv0809/padel-ratings/internal/stats"
)

// NoTopPlayer is shown as the top player of an empty leaderboard.
const NoTopPlayer = "—"

// Entry is one leaderboard row: a skill rating joined with the player's record.
type Entry struct {
	Player       string  `json:"player"`
	Mu           float64 `json:"mu"`
	Sigma        float64 `json:"sigma"`
	Conservative float64 `json:"conservative"`
	Matches      int     `json:"matches"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
}

type Leaderboard struct {
	Entries      []Entry `json:"entries"`
	TotalMatches int     `json:"totalMatches"`
	TopPlayer    string  `json:"topPlayer"`
	TopScore     float64 `json:"topScore"`
}

// Merge joins aggregates onto skill ratings. Every skill player gets exactly
// one entry; players missing from aggregates keep zero counts.
func Merge(aggregates []stats.PlayerAggregate, skills []rating.SkillRating) Leaderboard {
	byPlayer := make(map[string]stats.PlayerAggregate, len(aggregates))
	playerMatches := 0
	for _, a := range aggregates {
		byPlayer[a.Player] = a
		playerMatches += a.Matches
	}

	entries := make([]Entry, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		if seen[s.Player] {
			continue
		}
		seen[s.Player] = true

		e := Entry{
			Player:       s.Player,
			Mu:           s.Mu,
			Sigma:        s.Sigma,
			Conservative: s.Conservative,
		}
		if a, ok := byPlayer[s.Player]; ok {
			e.Matches = a.Matches
			e.Wins = a.Wins
			e.Losses = a.Losses
			e.WinRate = a.WinRate
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Conservative > entries[j].Conservative
	})

	lb := Leaderboard{
		Entries: entries,
		// each doubles match counts once for each of its four players
		TotalMatches: playerMatches / 4,
		TopPlayer:    NoTopPlayer,
	}
	if len(entries) > 0 {
		lb.TopPlayer = entries[0].Player
		lb.TopScore = entries[0].Conservative
	}
	return lb
}

// Top returns at most n entries from the head of the leaderboard.
func (l Leaderboard) Top(n int) []Entry {
	if n < 0 || n >= len(l.Entries) {
		return l.Entries
	}
	return l.Entries[:n]
}
