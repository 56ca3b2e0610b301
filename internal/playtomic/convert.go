package playtomic

import (
	"fmt"
	"time"

	"github.com/mauv0809/padel-ratings/internal/match"
)

// ToRecord converts a played doubles match with confirmed results into a
// history record. The first team returned by Playtomic becomes team 1.
func ToRecord(m PadelMatch) (match.Record, error) {
	if m.GameStatus != GameStatusPlayed || m.ResultsStatus != ResultsStatusConfirmed {
		return match.Record{}, fmt.Errorf("match %s (%s/%s): %w", m.MatchID, m.GameStatus, m.ResultsStatus, ErrNotRateable)
	}
	if len(m.Teams) != 2 || len(m.Teams[0].Players) != 2 || len(m.Teams[1].Players) != 2 {
		return match.Record{}, fmt.Errorf("match %s is not doubles: %w", m.MatchID, ErrNotRateable)
	}

	t1, t2 := m.Teams[0], m.Teams[1]
	sets := make([]match.SetScore, 0, len(m.Results))
	for _, r := range m.Results {
		sets = append(sets, match.SetScore{Team1: r.Scores[t1.ID], Team2: r.Scores[t2.ID]})
	}

	end := time.Unix(m.End, 0).UTC()
	rec := match.Record{
		ExternalID: m.MatchID,
		Source:     match.SourcePlaytomic,
		Date:       time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC),
		Team1:      match.Team{A: t1.Players[0].Name, B: t1.Players[1].Name},
		Team2:      match.Team{A: t2.Players[0].Name, B: t2.Players[1].Name},
		Sets:       sets,
		Winner:     match.DeriveWinner(sets),
	}
	if err := rec.Validate(); err != nil {
		return match.Record{}, fmt.Errorf("match %s: %w", m.MatchID, err)
	}
	return rec, nil
}

// EndedWithin reports whether the match ended less than d before now.
func (m PadelMatch) EndedWithin(d time.Duration, now time.Time) bool {
	return now.Sub(time.Unix(m.End, 0)) < d
}
