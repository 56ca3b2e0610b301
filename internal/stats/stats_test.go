package stats_test

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(day int, t1, t2 match.Team, sets ...match.SetScore) match.Record {
	return match.Record{
		Date:   time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
		Team1:  t1,
		Team2:  t2,
		Sets:   sets,
		Winner: match.DeriveWinner(sets),
	}
}

var (
	ab = match.Team{A: "A", B: "B"}
	cd = match.Team{A: "C", B: "D"}
	ac = match.Team{A: "A", B: "C"}
	bd = match.Team{A: "B", B: "D"}
)

func find(t *testing.T, ranked []stats.PlayerAggregate, player string) stats.PlayerAggregate {
	t.Helper()
	for _, a := range ranked {
		if a.Player == player {
			return a
		}
	}
	require.Failf(t, "player not found", "%s", player)
	return stats.PlayerAggregate{}
}

func TestCompute_SplitPair(t *testing.T) {
	history := []match.Record{
		rec(1, ab, cd, match.SetScore{Team1: 6, Team2: 2}, match.SetScore{Team1: 6, Team2: 3}),
		rec(2, ab, cd, match.SetScore{Team1: 4, Team2: 6}, match.SetScore{Team1: 3, Team2: 6}),
	}

	got := stats.Compute(history, stats.DefaultRecentLimit)

	for _, p := range []string{"A", "B"} {
		a := find(t, got.Ranked, p)
		assert.Equal(t, 2, a.Matches)
		assert.Equal(t, 1, a.Wins)
		assert.Equal(t, 1, a.Losses)
		assert.Equal(t, 50.0, a.WinRate)
	}

	a := find(t, got.Ranked, "A")
	assert.Equal(t, 2, a.SetsWon)
	assert.Equal(t, 2, a.SetsLost)
	assert.Equal(t, 19, a.GamesWon)
	assert.Equal(t, 17, a.GamesLost)

	assert.Equal(t, []string{"A", "B", "C", "D"}, got.Players)
	require.Len(t, got.Recent, 2)
	assert.Equal(t, 2, got.Recent[0].Date.Day(), "recent is newest first")
}

func TestCompute_Ordering(t *testing.T) {
	history := []match.Record{
		rec(1, ab, cd, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 6, Team2: 0}),
		rec(2, ac, bd, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 6, Team2: 0}),
		rec(3, ac, bd, match.SetScore{Team1: 0, Team2: 6}, match.SetScore{Team1: 0, Team2: 6}),
		rec(4, match.Team{A: "E", B: "F"}, match.Team{A: "G", B: "H"}, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 6, Team2: 0}),
	}

	got := stats.Compute(history, stats.DefaultRecentLimit)

	// E and F are 1/1 (100%), A is 2/3, B 2/3, C 1/3, D 1/3, G and H 0/1.
	var order []string
	for _, a := range got.Ranked {
		order = append(order, a.Player)
	}
	assert.Equal(t, []string{"E", "F", "A", "B", "C", "D", "G", "H"}, order)

	for i := 1; i < len(got.Ranked); i++ {
		prev, cur := got.Ranked[i-1], got.Ranked[i]
		assert.True(t, prev.WinRate > cur.WinRate || (prev.WinRate == cur.WinRate && prev.Matches >= cur.Matches))
	}
	assert.Equal(t, 66.7, find(t, got.Ranked, "A").WinRate)
}

func TestCompute_WinRateBeatsVolume(t *testing.T) {
	// E has more matches but a lower win rate than A.
	history := []match.Record{
		rec(1, ab, cd, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 6, Team2: 0}),
		rec(2, match.Team{A: "E", B: "F"}, cd, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 6, Team2: 0}),
		rec(3, match.Team{A: "E", B: "F"}, cd, match.SetScore{Team1: 0, Team2: 6}, match.SetScore{Team1: 0, Team2: 6}),
	}
	got := stats.Compute(history, stats.DefaultRecentLimit)
	assert.Equal(t, "A", got.Ranked[0].Player)
}

func TestCompute_Invariants(t *testing.T) {
	var history []match.Record
	teams := []match.Team{ab, cd, ac, bd}
	for i := 0; i < 14; i++ {
		t1, t2 := teams[i%2], teams[1-i%2]
		if i%3 == 0 {
			t1, t2 = teams[2], teams[3]
		}
		history = append(history, rec(i%28+1, t1, t2,
			match.SetScore{Team1: 6, Team2: i % 7},
			match.SetScore{Team1: i % 5, Team2: 6},
			match.SetScore{Team1: 7, Team2: 5}))
	}

	first := stats.Compute(history, stats.DefaultRecentLimit)
	second := stats.Compute(history, stats.DefaultRecentLimit)
	assert.Equal(t, first, second, "recomputing is idempotent")

	for _, a := range first.Ranked {
		assert.Equal(t, a.Matches, a.Wins+a.Losses, a.Player)
	}
	assert.Len(t, first.Recent, stats.DefaultRecentLimit)
}

func TestCompute_Empty(t *testing.T) {
	got := stats.Compute(nil, stats.DefaultRecentLimit)
	assert.Empty(t, got.Ranked)
	assert.Empty(t, got.Recent)
	assert.Empty(t, got.Players)
	assert.NotNil(t, got.Ranked, "empty output encodes as [] not null")
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0.0, stats.WinRate(0, 0))
	assert.Equal(t, 33.3, stats.WinRate(1, 3))
	assert.Equal(t, 100.0, stats.WinRate(4, 4))
}

func TestPartnerships(t *testing.T) {
	history := []match.Record{
		rec(1, ab, cd, match.SetScore{Team1: 6, Team2: 2}, match.SetScore{Team1: 6, Team2: 3}),
		rec(2, match.Team{A: "B", B: "A"}, cd, match.SetScore{Team1: 6, Team2: 2}, match.SetScore{Team1: 6, Team2: 3}),
		rec(3, ac, bd, match.SetScore{Team1: 6, Team2: 2}, match.SetScore{Team1: 2, Team2: 6}, match.SetScore{Team1: 4, Team2: 6}),
	}

	got := stats.Partnerships(history)
	require.Len(t, got, 4)
	assert.Equal(t, [2]string{"A", "B"}, got[0].Players, "pair key ignores order")
	assert.Equal(t, 2, got[0].Matches)
	assert.Equal(t, 100.0, got[0].WinRate)

	best := stats.BestPartnerships(history, 2)
	require.Len(t, best, 2)
	assert.Equal(t, [2]string{"C", "D"}, best[1].Players)
	assert.Equal(t, 0, best[1].Wins)
}

func TestCloseMatches(t *testing.T) {
	history := []match.Record{
		rec(1, ab, cd, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 6, Team2: 1}),
		rec(2, ab, cd, match.SetScore{Team1: 6, Team2: 4}, match.SetScore{Team1: 7, Team2: 6}),
		rec(3, ab, cd, match.SetScore{Team1: 6, Team2: 0}, match.SetScore{Team1: 0, Team2: 6}, match.SetScore{Team1: 6, Team2: 0}),
		rec(4, ab, cd, match.SetScore{Team1: 6, Team2: 4}, match.SetScore{Team1: 6, Team2: 1}),
	}

	got := stats.CloseMatches(history)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Date.Day())
	assert.Equal(t, 2, got[1].Date.Day())
	assert.Empty(t, stats.CloseMatches(nil))
}
