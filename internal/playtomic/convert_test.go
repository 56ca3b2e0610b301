package playtomic

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedMatch() PadelMatch {
	return PadelMatch{
		MatchID:       "pt-1",
		End:           time.Date(2025, time.July, 9, 19, 30, 0, 0, time.UTC).Unix(),
		GameStatus:    GameStatusPlayed,
		ResultsStatus: ResultsStatusConfirmed,
		Teams: []Team{
			{ID: "t1", Players: []Player{{Name: "Ana"}, {Name: "Bea"}}},
			{ID: "t2", Players: []Player{{Name: "Cris"}, {Name: "Dani"}}},
		},
		Results: []SetResult{
			{Name: "Set-1", Scores: map[string]int{"t1": 6, "t2": 3}},
			{Name: "Set-2", Scores: map[string]int{"t1": 4, "t2": 6}},
			{Name: "Set-3", Scores: map[string]int{"t1": 3, "t2": 6}},
		},
	}
}

func TestToRecord(t *testing.T) {
	rec, err := ToRecord(playedMatch())
	require.NoError(t, err)

	assert.Equal(t, "pt-1", rec.ExternalID)
	assert.Equal(t, match.SourcePlaytomic, rec.Source)
	assert.Equal(t, time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, match.Team{A: "Ana", B: "Bea"}, rec.Team1)
	assert.Equal(t, match.Team{A: "Cris", B: "Dani"}, rec.Team2)
	assert.Equal(t, []match.SetScore{{Team1: 6, Team2: 3}, {Team1: 4, Team2: 6}, {Team1: 3, Team2: 6}}, rec.Sets)
	assert.Equal(t, match.Team2, rec.Winner)
}

func TestToRecordRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *PadelMatch)
		target error
	}{
		{"not played", func(m *PadelMatch) { m.GameStatus = GameStatusPending }, ErrNotRateable},
		{"unconfirmed", func(m *PadelMatch) { m.ResultsStatus = ResultsStatusValidating }, ErrNotRateable},
		{"singles", func(m *PadelMatch) { m.Teams[0].Players = m.Teams[0].Players[:1] }, ErrNotRateable},
		{"one set", func(m *PadelMatch) { m.Results = m.Results[:1] }, match.ErrInvalidScore},
		{"same player twice", func(m *PadelMatch) { m.Teams[1].Players[0].Name = "Ana" }, match.ErrDuplicatePlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := playedMatch()
			tt.mutate(&m)
			_, err := ToRecord(m)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestEndedWithin(t *testing.T) {
	m := playedMatch()
	end := time.Unix(m.End, 0)
	assert.True(t, m.EndedWithin(24*time.Hour, end.Add(time.Hour)))
	assert.False(t, m.EndedWithin(24*time.Hour, end.Add(25*time.Hour)))
}
