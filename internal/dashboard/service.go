package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/ranking"
	"github.com/mauv0809/padel-ratings/internal/rating"
	"github.com/mauv0809/padel-ratings/internal/stats"
)

// Service recomputes every ranking from the stored history on each call.
// Nothing is cached between calls.
type Service struct {
	store   club.ClubStore
	elo     *rating.EloEngine
	skill   *rating.SkillEngine
	metrics metrics.Metrics
	opts    Options
}

func NewService(store club.ClubStore, elo *rating.EloEngine, skill *rating.SkillEngine, metrics metrics.Metrics, opts Options) *Service {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = stats.DefaultRecentLimit
	}
	return &Service{
		store:   store,
		elo:     elo,
		skill:   skill,
		metrics: metrics,
		opts:    opts,
	}
}

// Build runs all engines over a single snapshot of the history.
func (s *Service) Build(ctx context.Context) (Data, error) {
	records, err := s.history(ctx)
	if err != nil {
		return Data{}, err
	}

	start := time.Now()
	aggregates := stats.Compute(records, s.opts.RecentLimit)
	eloResult := s.elo.Replay(records)
	skills := s.skill.Compute(records)

	data := Data{
		Leaderboard:    ranking.Merge(aggregates.Ranked, skills),
		Stats:          aggregates,
		Elo:            eloResult.Ratings,
		Skill:          skills,
		SkillAvailable: s.skill.Available(),
		Partnerships:   stats.BestPartnerships(records, s.opts.MinPartnershipMatches),
		CloseMatches:   limit(stats.CloseMatches(records), s.opts.InsightLimit),
		Upsets:         limit(eloResult.Upsets, s.opts.InsightLimit),
	}
	s.observe(start, len(records))
	return data, nil
}

// Leaderboard computes only what the merged leaderboard needs.
func (s *Service) Leaderboard(ctx context.Context) (ranking.Leaderboard, error) {
	records, err := s.history(ctx)
	if err != nil {
		return ranking.Leaderboard{}, err
	}
	start := time.Now()
	lb := ranking.Merge(stats.Compute(records, s.opts.RecentLimit).Ranked, s.skill.Compute(records))
	s.observe(start, len(records))
	return lb, nil
}

func (s *Service) Stats(ctx context.Context) (stats.Aggregates, error) {
	records, err := s.history(ctx)
	if err != nil {
		return stats.Aggregates{}, err
	}
	return stats.Compute(records, s.opts.RecentLimit), nil
}

func (s *Service) Elo(ctx context.Context) ([]rating.EloRating, error) {
	records, err := s.history(ctx)
	if err != nil {
		return nil, err
	}
	return s.elo.Compute(records), nil
}

func (s *Service) Skill(ctx context.Context) ([]rating.SkillRating, error) {
	records, err := s.history(ctx)
	if err != nil {
		return nil, err
	}
	return s.skill.Compute(records), nil
}

// Partnerships returns every pair with at least minMatches together.
func (s *Service) Partnerships(ctx context.Context, minMatches int) ([]stats.Partnership, error) {
	records, err := s.history(ctx)
	if err != nil {
		return nil, err
	}
	return stats.BestPartnerships(records, minMatches), nil
}

// EloHistory returns the rating after every match, for one player or, with
// an empty name, for everyone.
func (s *Service) EloHistory(ctx context.Context, player string) ([]rating.EloPoint, error) {
	records, err := s.history(ctx)
	if err != nil {
		return nil, err
	}
	history := s.elo.Replay(records).History
	if player == "" {
		return history, nil
	}
	points := rating.HistoryFor(history, player)
	if len(points) == 0 {
		return nil, fmt.Errorf("%q: %w", player, ErrPlayerNotFound)
	}
	return points, nil
}

// Player looks a player up by name, ignoring case.
func (s *Service) Player(ctx context.Context, name string) (PlayerProfile, error) {
	records, err := s.history(ctx)
	if err != nil {
		return PlayerProfile{}, err
	}

	aggregates := stats.Compute(records, 0)
	var profile PlayerProfile
	found := false
	for _, a := range aggregates.Ranked {
		if strings.EqualFold(a.Player, strings.TrimSpace(name)) {
			profile = PlayerProfile{Player: a.Player, Aggregate: a}
			found = true
			break
		}
	}
	if !found {
		return PlayerProfile{}, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}

	for _, e := range s.elo.Compute(records) {
		if e.Player == profile.Player {
			profile.Elo = &e
			break
		}
	}
	skills := s.skill.Compute(records)
	for i, sk := range skills {
		if sk.Player == profile.Player {
			profile.Skill = &sk
			profile.Rank = i + 1
			break
		}
	}
	profile.Partners = make([]stats.Partnership, 0)
	for _, p := range stats.Partnerships(records) {
		if p.Players[0] == profile.Player || p.Players[1] == profile.Player {
			profile.Partners = append(profile.Partners, p)
		}
	}
	return profile, nil
}

func (s *Service) history(ctx context.Context) ([]match.Record, error) {
	records, err := s.store.GetMatches(ctx)
	if err != nil {
		log.Error("Failed to load match history", "error", err)
		return nil, fmt.Errorf("loading match history: %w", err)
	}
	return records, nil
}

func (s *Service) observe(start time.Time, matches int) {
	duration := time.Since(start).Seconds()
	s.metrics.ObserveRatingDuration(duration)
	s.metrics.SetHistorySize(matches)
	log.Debug("Recomputed ratings", "matches", matches, "duration_seconds", duration)
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
