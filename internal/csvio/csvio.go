package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mauv0809/padel-ratings/internal/match"
)

// Header is the column order written by Encode.
var Header = []string{
	"date",
	"team1_player1", "team1_player2",
	"team2_player1", "team2_player2",
	"set1_team1", "set1_team2",
	"set2_team1", "set2_team2",
	"set3_team1", "set3_team2",
	"winner_team",
}

var requiredColumns = Header[:9]

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing csv column")

// Encode writes the header followed by one line per record.
func Encode(w io.Writer, records []match.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := rec.Row()
		line := []string{
			row.Date,
			row.Team1Player1, row.Team1Player2,
			row.Team2Player1, row.Team2Player2,
			row.Set1Team1, row.Set1Team2,
			row.Set2Team1, row.Set2Team2,
			row.Set3Team1, row.Set3Team2,
			row.WinnerTeam,
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing match %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads a CSV file with a header line. Columns are matched by name so
// their order does not matter; set3 and winner_team columns are optional.
// The first bad row aborts the whole decode.
func Decode(r io.Reader) ([]match.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []match.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	records := make([]match.Record, 0)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		get := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}
		rec, err := match.ParseRow(match.Row{
			Date:         get("date"),
			Team1Player1: get("team1_player1"),
			Team1Player2: get("team1_player2"),
			Team2Player1: get("team2_player1"),
			Team2Player2: get("team2_player2"),
			Set1Team1:    get("set1_team1"),
			Set1Team2:    get("set1_team2"),
			Set2Team1:    get("set2_team1"),
			Set2Team2:    get("set2_team2"),
			Set3Team1:    get("set3_team1"),
			Set3Team2:    get("set3_team2"),
			WinnerTeam:   get("winner_team"),
		})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.Source = match.SourceCSV
		records = append(records, rec)
	}
	return records, nil
}
