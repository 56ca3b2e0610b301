package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-ratings/internal/match"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

const matchColumns = `id, external_id, source, date,
	team1_player1, team1_player2, team2_player1, team2_player2,
	set1_team1, set1_team2, set2_team1, set2_team2, set3_team1, set3_team2,
	winner_team`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AddMatch appends a match to the history, assigning it an id when it has none.
func (s *store) AddMatch(ctx context.Context, rec match.Record) (match.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := rec.Validate(); err != nil {
		return match.Record{}, err
	}
	rec = withDefaults(rec)
	if err := insertMatch(ctx, s.db, rec); err != nil {
		return match.Record{}, err
	}
	log.Debug("Stored match", "id", rec.ID, "source", rec.Source, "date", rec.Date.Format(match.DateLayout))
	return rec, nil
}

// AddMatches appends several matches in one transaction. Either all are stored or none.
func (s *store) AddMatches(ctx context.Context, recs []match.Record) ([]match.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]match.Record, 0, len(recs))
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range recs {
			if err := rec.Validate(); err != nil {
				return err
			}
			rec = withDefaults(rec)
			if err := insertMatch(ctx, tx, rec); err != nil {
				return err
			}
			stored = append(stored, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetMatches returns the full history ordered by date, then by insertion order.
// A row that no longer parses fails the whole read with ErrCorruptMatch.
func (s *store) GetMatches(ctx context.Context) ([]match.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY date ASC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	records := make([]match.Record, 0)
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to read match history", "error", err)
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceMatches swaps the whole history for recs in a single transaction.
func (s *store) ReplaceMatches(ctx context.Context, recs []match.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
			return fmt.Errorf("failed to clear matches: %w", err)
		}
		for _, rec := range recs {
			if err := rec.Validate(); err != nil {
				return err
			}
			if err := insertMatch(ctx, tx, withDefaults(rec)); err != nil {
				return err
			}
		}
		log.Info("Replaced match history", "count", len(recs))
		return nil
	})
}

// Clear removes every match.
func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	return nil
}

// ClearMatch removes one match by id.
func (s *store) ClearMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("failed to clear match %s: %w", matchID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", matchID, ErrMatchNotFound)
	}
	return nil
}

// HasExternalID reports whether a match imported from an external system is already stored.
func (s *store) HasExternalID(ctx context.Context, externalID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM matches WHERE external_id = ? LIMIT 1`, externalID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *store) CountMatches(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetPlayerNames returns every distinct player name in the history, sorted.
func (s *store) GetPlayerNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT team1_player1 FROM matches
		UNION SELECT team1_player2 FROM matches
		UNION SELECT team2_player1 FROM matches
		UNION SELECT team2_player2 FROM matches
		ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func withDefaults(rec match.Record) match.Record {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Source == "" {
		rec.Source = match.SourceManual
	}
	return rec
}

func insertMatch(ctx context.Context, db execer, rec match.Record) error {
	row := rec.Row()
	var externalID sql.NullString
	if rec.ExternalID != "" {
		externalID = sql.NullString{String: rec.ExternalID, Valid: true}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO matches (`+matchColumns+`, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, externalID, string(rec.Source), row.Date,
		row.Team1Player1, row.Team1Player2, row.Team2Player1, row.Team2Player2,
		row.Set1Team1, row.Set1Team2, row.Set2Team1, row.Set2Team2, row.Set3Team1, row.Set3Team2,
		row.WinnerTeam, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", rec.ID, err)
	}
	return nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (match.Record, error) {
	var (
		id, source string
		externalID sql.NullString
		row        match.Row
	)
	err := scanner.Scan(
		&id, &externalID, &source, &row.Date,
		&row.Team1Player1, &row.Team1Player2, &row.Team2Player1, &row.Team2Player2,
		&row.Set1Team1, &row.Set1Team2, &row.Set2Team1, &row.Set2Team2, &row.Set3Team1, &row.Set3Team2,
		&row.WinnerTeam,
	)
	if err != nil {
		return match.Record{}, fmt.Errorf("failed to scan match row: %w", err)
	}

	rec, err := match.ParseRow(row)
	if err != nil {
		return match.Record{}, fmt.Errorf("%w %s: %w", ErrCorruptMatch, id, err)
	}
	rec.ID = id
	rec.ExternalID = externalID.String
	rec.Source = match.Source(source)
	return rec, nil
}
