package stats

import (
	"sort"

	"github.com/mauv0809/padel-ratings/internal/match"
)

// Partnerships returns the record of every pair that has played together,
// ordered like the player leaderboard.
func Partnerships(records []match.Record) []Partnership {
	byPair := make(map[[2]string]*Partnership)
	add := func(team match.Team, won bool) {
		key := [2]string{team.A, team.B}
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		p, ok := byPair[key]
		if !ok {
			p = &Partnership{Players: key}
			byPair[key] = p
		}
		p.Matches++
		if won {
			p.Wins++
		}
	}

	for _, rec := range records {
		add(rec.Team1, rec.Winner == match.Team1)
		add(rec.Team2, rec.Winner == match.Team2)
	}

	out := make([]Partnership, 0, len(byPair))
	for _, p := range byPair {
		p.Losses = p.Matches - p.Wins
		p.WinRate = WinRate(p.Wins, p.Matches)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		if out[i].Players[0] != out[j].Players[0] {
			return out[i].Players[0] < out[j].Players[0]
		}
		return out[i].Players[1] < out[j].Players[1]
	})
	return out
}

// BestPartnerships keeps the partnerships with at least minMatches played.
func BestPartnerships(records []match.Record, minMatches int) []Partnership {
	all := Partnerships(records)
	out := make([]Partnership, 0, len(all))
	for _, p := range all {
		if p.Matches >= minMatches {
			out = append(out, p)
		}
	}
	return out
}
