package match

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05"}

// NewRecord validates a submitted form and builds a record from it. The date
// defaults to the calendar day of now and the winner is always derived.
func NewRecord(form Form, now time.Time) (Record, error) {
	y, m, d := now.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if strings.TrimSpace(form.Date) != "" {
		d, err := ParseDate(form.Date)
		if err != nil {
			return Record{}, err
		}
		date = d
	}

	team1, team2, err := parseTeams(form.Team1Player1, form.Team1Player2, form.Team2Player1, form.Team2Player2)
	if err != nil {
		return Record{}, err
	}

	sets, err := ParseSets(form.Set1Team1, form.Set1Team2, form.Set2Team1, form.Set2Team2, form.Set3Team1, form.Set3Team2)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Source: SourceManual,
		Date:   date,
		Team1:  team1,
		Team2:  team2,
		Sets:   sets,
		Winner: DeriveWinner(sets),
	}, nil
}

// ParseRow converts a stored row into a record. A stored winner_team of 1 or
// 2 is kept as is; an empty one is derived from the sets.
func ParseRow(row Row) (Record, error) {
	date, err := ParseDate(row.Date)
	if err != nil {
		return Record{}, err
	}

	team1, team2, err := parseTeams(row.Team1Player1, row.Team1Player2, row.Team2Player1, row.Team2Player2)
	if err != nil {
		return Record{}, err
	}

	sets, err := ParseSets(row.Set1Team1, row.Set1Team2, row.Set2Team1, row.Set2Team2, row.Set3Team1, row.Set3Team2)
	if err != nil {
		return Record{}, err
	}

	winner, err := parseWinner(row.WinnerTeam)
	if err != nil {
		return Record{}, err
	}
	if winner == 0 {
		winner = DeriveWinner(sets)
	}

	return Record{
		Date:   date,
		Team1:  team1,
		Team2:  team2,
		Sets:   sets,
		Winner: winner,
	}, nil
}

// Row flattens the record into its string form.
func (r Record) Row() Row {
	row := Row{
		Date:         r.Date.Format(DateLayout),
		Team1Player1: r.Team1.A,
		Team1Player2: r.Team1.B,
		Team2Player1: r.Team2.A,
		Team2Player2: r.Team2.B,
		WinnerTeam:   strconv.Itoa(int(r.Winner)),
	}
	if len(r.Sets) > 0 {
		row.Set1Team1, row.Set1Team2 = strconv.Itoa(r.Sets[0].Team1), strconv.Itoa(r.Sets[0].Team2)
	}
	if len(r.Sets) > 1 {
		row.Set2Team1, row.Set2Team2 = strconv.Itoa(r.Sets[1].Team1), strconv.Itoa(r.Sets[1].Team2)
	}
	if len(r.Sets) > 2 {
		row.Set3Team1, row.Set3Team2 = strconv.Itoa(r.Sets[2].Team1), strconv.Itoa(r.Sets[2].Team2)
	}
	return row
}

// Validate checks a record built outside the parsers, e.g. from Playtomic.
func (r Record) Validate() error {
	if _, _, err := parseTeams(r.Team1.A, r.Team1.B, r.Team2.A, r.Team2.B); err != nil {
		return err
	}
	if len(r.Sets) < 2 || len(r.Sets) > 3 {
		return fmt.Errorf("%d sets played: %w", len(r.Sets), ErrInvalidScore)
	}
	for i, s := range r.Sets {
		if s.Team1 < 0 || s.Team2 < 0 {
			return fmt.Errorf("set %d %d-%d: %w", i+1, s.Team1, s.Team2, ErrInvalidScore)
		}
	}
	if r.Winner != Team1 && r.Winner != Team2 {
		return fmt.Errorf("winner %d: %w", r.Winner, ErrInvalidWinner)
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ParseSets parses the two required sets and the optional third. The third
// set is kept only when both of its scores are present and valid; anything
// else means it was not played.
func ParseSets(s1t1, s1t2, s2t1, s2t2, s3t1, s3t2 string) ([]SetScore, error) {
	required := []struct {
		name  string
		value string
	}{
		{"set1_team1", s1t1}, {"set1_team2", s1t2},
		{"set2_team1", s2t1}, {"set2_team2", s2t2},
	}

	games := make([]int, len(required))
	for i, f := range required {
		g, err := parseScore(f.value)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", f.name, f.value, ErrInvalidScore)
		}
		games[i] = g
	}

	sets := []SetScore{
		{Team1: games[0], Team2: games[1]},
		{Team1: games[2], Team2: games[3]},
	}

	if strings.TrimSpace(s3t1) != "" && strings.TrimSpace(s3t2) != "" {
		a, errA := parseScore(s3t1)
		b, errB := parseScore(s3t2)
		if errA == nil && errB == nil {
			sets = append(sets, SetScore{Team1: a, Team2: b})
		}
	}
	return sets, nil
}

// ParseDate accepts a calendar date, or a timestamp whose date part is used.
// The result is midnight UTC of the date as written, whatever the offset.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDate)
}

// maxGames bounds a single team's games in one set. Tie-break and
// long-set formats stay well below it.
const maxGames = 99

// parseScore accepts integers in [0, maxGames]. Integral decimals such as
// "6.0" are tolerated because spreadsheet exports write them for sparse columns.
func parseScore(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > maxGames {
			return 0, ErrInvalidScore
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > maxGames || f != math.Trunc(f) {
		return 0, ErrInvalidScore
	}
	return int(f), nil
}

func parseWinner(value string) (Side, error) {
	switch strings.TrimSpace(value) {
	case "":
		return 0, nil
	case "1", "1.0":
		return Team1, nil
	case "2", "2.0":
		return Team2, nil
	default:
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidWinner)
	}
}

func parseTeams(p1, p2, p3, p4 string) (Team, Team, error) {
	names := []string{strings.TrimSpace(p1), strings.TrimSpace(p2), strings.TrimSpace(p3), strings.TrimSpace(p4)}
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return Team{}, Team{}, fmt.Errorf("team%d_player%d: %w", i/2+1, i%2+1, ErrMissingPlayer)
		}
		if _, ok := seen[n]; ok {
			return Team{}, Team{}, fmt.Errorf("%q: %w", n, ErrDuplicatePlayer)
		}
		seen[n] = struct{}{}
	}
	return Team{A: names[0], B: names[1]}, Team{A: names[2], B: names[3]}, nil
}
