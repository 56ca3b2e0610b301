package stats

import (
	"math"
	"sort"

	"github.com/mauv0809/padel-ratings/internal/match"
)

// Compute aggregates per-player results over records. Ranked is ordered by
// win rate, then matches played, both descending. Recent holds at most
// recentLimit matches, newest first.
func Compute(records []match.Record, recentLimit int) Aggregates {
	byPlayer := make(map[string]*PlayerAggregate)
	get := func(name string) *PlayerAggregate {
		a, ok := byPlayer[name]
		if !ok {
			a = &PlayerAggregate{Player: name}
			byPlayer[name] = a
		}
		return a
	}

	for _, rec := range records {
		sets1, sets2 := match.SetsWon(rec.Sets)
		var games1, games2 int
		for _, s := range rec.Sets {
			games1 += s.Team1
			games2 += s.Team2
		}

		for _, p := range rec.Team1.Players() {
			a := get(p)
			a.Matches++
			if rec.Winner == match.Team1 {
				a.Wins++
			}
			a.SetsWon += sets1
			a.SetsLost += sets2
			a.GamesWon += games1
			a.GamesLost += games2
		}
		for _, p := range rec.Team2.Players() {
			a := get(p)
			a.Matches++
			if rec.Winner == match.Team2 {
				a.Wins++
			}
			a.SetsWon += sets2
			a.SetsLost += sets1
			a.GamesWon += games2
			a.GamesLost += games1
		}
	}

	ranked := make([]PlayerAggregate, 0, len(byPlayer))
	players := make([]string, 0, len(byPlayer))
	for name, a := range byPlayer {
		a.Losses = a.Matches - a.Wins
		a.WinRate = WinRate(a.Wins, a.Matches)
		ranked = append(ranked, *a)
		players = append(players, name)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].WinRate != ranked[j].WinRate {
			return ranked[i].WinRate > ranked[j].WinRate
		}
		if ranked[i].Matches != ranked[j].Matches {
			return ranked[i].Matches > ranked[j].Matches
		}
		return ranked[i].Player < ranked[j].Player
	})
	sort.Strings(players)

	return Aggregates{
		Ranked:  ranked,
		Recent:  match.MostRecent(records, recentLimit),
		Players: players,
	}
}

// WinRate returns the win percentage rounded to one decimal, or 0 when no
// matches were played.
func WinRate(wins, matches int) float64 {
	if matches == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(matches)*1000) / 10
}
