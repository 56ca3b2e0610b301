package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/csvio"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/playtomic"
	"github.com/mauv0809/padel-ratings/internal/pubsub"
)

// New creates a new Processor. pt may be nil, in which case SyncPlaytomic
// returns ErrSyncDisabled.
func New(store Store, board Board, notifier Notifier, metrics metrics.Metrics, counters metrics.MetricsStore, pubsub pubsub.PubSubClient, pt playtomic.PlaytomicClient, tenantID string) *Processor {
	return &Processor{
		store:     store,
		board:     board,
		pubsub:    pubsub,
		notifier:  notifier,
		metrics:   metrics,
		counters:  counters,
		playtomic: pt,
		tenantID:  tenantID,
		now:       time.Now,
	}
}

// RecordMatch validates a submitted match, stores it and publishes a
// match-recorded event. In dry-run mode nothing is stored or published.
func (p *Processor) RecordMatch(ctx context.Context, form match.Form, dryRun bool) (Recorded, error) {
	rec, err := match.NewRecord(form, p.now())
	if err != nil {
		p.metrics.IncMatchesRejected()
		return Recorded{}, err
	}

	known, err := p.store.GetPlayerNames(ctx)
	if err != nil {
		return Recorded{}, fmt.Errorf("failed to load player names: %w", err)
	}
	players := rec.Players()
	warnings := club.NewPlayerWarnings(players[:], known)
	for name, s := range warnings {
		log.Warn("New player resembles an existing one", "name", name, "suggestion", s[0].Name, "confidence", s[0].Confidence)
	}

	if dryRun {
		log.Info("[Dry Run] Would record match", "team1", rec.Team1, "team2", rec.Team2, "winner", rec.Winner)
		return Recorded{Match: rec, Warnings: warnings, DryRun: true}, nil
	}

	saved, err := p.store.AddMatch(ctx, rec)
	if err != nil {
		return Recorded{}, fmt.Errorf("failed to store match: %w", err)
	}
	p.metrics.IncMatchesRecorded(string(saved.Source))
	p.counters.Increment(metrics.KeyMatchesRecorded)
	log.Info("Recorded match", "matchID", saved.ID, "date", saved.Date.Format(match.DateLayout), "winner", saved.Winner)

	p.publish(ctx, saved, true)
	return Recorded{Match: saved, Warnings: warnings}, nil
}

// HandleMatchRecorded consumes a match-recorded event and announces the
// result together with the updated leaderboard.
func (p *Processor) HandleMatchRecorded(ctx context.Context, event pubsub.MatchRecorded, dryRun bool) error {
	if !event.Notify {
		log.Debug("Skipping notification for backfilled match", "matchID", event.Match.ID)
		return nil
	}
	lb, err := p.board.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}
	if err := p.notifier.SendResultNotification(ctx, event.Match, lb, dryRun); err != nil {
		return fmt.Errorf("failed to send result notification: %w", err)
	}
	if !dryRun {
		p.counters.Increment(metrics.KeySlackResultsSent)
	}
	return nil
}

// ImportCSV replaces the whole history with the matches in r. A file with any
// invalid row is rejected as a whole and the history is left untouched.
func (p *Processor) ImportCSV(ctx context.Context, r io.Reader, dryRun bool) (int, error) {
	recs, err := csvio.Decode(r)
	if err != nil {
		p.metrics.IncMatchesRejected()
		return 0, err
	}
	if dryRun {
		log.Info("[Dry Run] Would replace match history", "matches", len(recs))
		return len(recs), nil
	}
	if err := p.store.ReplaceMatches(ctx, recs); err != nil {
		return 0, fmt.Errorf("failed to replace matches: %w", err)
	}
	for range recs {
		p.metrics.IncMatchesRecorded(string(match.SourceCSV))
		p.counters.Increment(metrics.KeyMatchesImported)
	}
	log.Info("Imported match history", "matches", len(recs))
	return len(recs), nil
}

// SyncPlaytomic fetches the club's matches of the last days days and adds the
// played doubles matches with confirmed results that are not stored yet.
// Matches that ended within NotifyWindow are announced.
func (p *Processor) SyncPlaytomic(ctx context.Context, days int, dryRun bool) (SyncResult, error) {
	if p.playtomic == nil || p.tenantID == "" {
		return SyncResult{}, ErrSyncDisabled
	}
	if days <= 0 {
		return SyncResult{}, fmt.Errorf("%d: %w", days, ErrInvalidDays)
	}
	p.metrics.IncSyncRuns()

	now := p.now()
	params := &playtomic.SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{p.tenantID},
		FromStartDate: now.AddDate(0, 0, -days).Format("2006-01-02T15:04:05"),
	}
	summaries, err := p.playtomic.GetMatches(ctx, params)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{Fetched: len(summaries)}
	var (
		recs   []match.Record
		notify = make(map[string]bool)
	)
	for _, s := range summaries {
		known, err := p.store.HasExternalID(ctx, s.MatchID)
		if err != nil {
			return result, fmt.Errorf("failed to check match %s: %w", s.MatchID, err)
		}
		if known {
			result.Known++
			continue
		}
		pm, err := p.playtomic.GetSpecificMatch(ctx, s.MatchID)
		if err != nil {
			log.Error("Failed to fetch Playtomic match", "matchID", s.MatchID, "error", err)
			result.Rejected++
			continue
		}
		rec, err := playtomic.ToRecord(pm)
		switch {
		case errors.Is(err, playtomic.ErrNotRateable):
			log.Debug("Skipping Playtomic match", "matchID", s.MatchID, "reason", err)
			result.Skipped++
			continue
		case err != nil:
			log.Warn("Rejected Playtomic match", "matchID", s.MatchID, "error", err)
			p.metrics.IncMatchesRejected()
			result.Rejected++
			continue
		}
		recs = append(recs, rec)
		notify[rec.ExternalID] = pm.EndedWithin(NotifyWindow, now)
	}

	if dryRun {
		log.Info("[Dry Run] Would add Playtomic matches", "count", len(recs))
		result.Added = len(recs)
		return result, nil
	}
	if len(recs) == 0 {
		log.Info("Playtomic sync found no new matches", "fetched", result.Fetched)
		return result, nil
	}

	saved, err := p.store.AddMatches(ctx, recs)
	if err != nil {
		return result, fmt.Errorf("failed to store synced matches: %w", err)
	}
	result.Added = len(saved)
	for _, rec := range saved {
		p.metrics.IncMatchesRecorded(string(match.SourcePlaytomic))
		p.counters.Increment(metrics.KeyMatchesSynced)
		p.publish(ctx, rec, notify[rec.ExternalID])
	}
	log.Info("Playtomic sync finished", "fetched", result.Fetched, "added", result.Added, "known", result.Known, "skipped", result.Skipped, "rejected", result.Rejected)
	return result, nil
}

// publish announces a stored match. The match is already part of the
// history, so a failed publish is logged and not returned.
func (p *Processor) publish(ctx context.Context, rec match.Record, notify bool) {
	event := pubsub.MatchRecorded{Match: rec, Notify: notify}
	if err := p.pubsub.SendMessage(ctx, pubsub.EventMatchRecorded, event); err != nil {
		log.Error("Failed to publish match-recorded event", "matchID", rec.ID, "error", err)
	}
}
