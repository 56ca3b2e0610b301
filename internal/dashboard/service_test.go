package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/ranking"
	"github.com/mauv0809/padel-ratings/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history() []match.Record {
	day := func(d int) time.Time { return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC) }
	return []match.Record{
		{
			ID: "m1", Date: day(1),
			Team1: match.Team{A: "Ana", B: "Bea"}, Team2: match.Team{A: "Cris", B: "Dani"},
			Sets: []match.SetScore{{Team1: 6, Team2: 2}, {Team1: 6, Team2: 3}}, Winner: match.Team1,
		},
		{
			ID: "m2", Date: day(2),
			Team1: match.Team{A: "Ana", B: "Bea"}, Team2: match.Team{A: "Cris", B: "Dani"},
			Sets: []match.SetScore{{Team1: 4, Team2: 6}, {Team1: 3, Team2: 6}}, Winner: match.Team2,
		},
		{
			ID: "m3", Date: day(3),
			Team1: match.Team{A: "Ana", B: "Cris"}, Team2: match.Team{A: "Bea", B: "Dani"},
			Sets: []match.SetScore{{Team1: 6, Team2: 4}, {Team1: 4, Team2: 6}, {Team1: 7, Team2: 5}}, Winner: match.Team1,
		},
	}
}

func newService(store club.ClubStore, model rating.SkillModel, m metrics.Metrics) *dashboard.Service {
	return dashboard.NewService(
		store,
		rating.NewEloEngine(rating.DefaultInitialElo, rating.DefaultKFactor),
		rating.NewSkillEngine(model),
		m,
		dashboard.DefaultOptions(),
	)
}

func TestBuild(t *testing.T) {
	m := metrics.NewMock()
	svc := newService(club.NewMock(history()...), rating.NewTrueSkill(), m)

	data, err := svc.Build(context.Background())
	require.NoError(t, err)

	assert.True(t, data.SkillAvailable)
	assert.Len(t, data.Stats.Ranked, 4)
	assert.Len(t, data.Elo, 4)
	assert.Len(t, data.Skill, 4)
	assert.Len(t, data.Leaderboard.Entries, 4)
	assert.Equal(t, 3, data.Leaderboard.TotalMatches)
	assert.Equal(t, "Cris", data.Leaderboard.TopPlayer)

	require.Len(t, data.Partnerships, 2, "Ana+Bea and Cris+Dani played twice")
	require.Len(t, data.CloseMatches, 1)
	assert.Equal(t, "m3", data.CloseMatches[0].ID)
	require.Len(t, data.Upsets, 1)
	assert.Equal(t, "m2", data.Upsets[0].Match.ID)

	assert.Equal(t, 1, m.RatingComputations())
	assert.Equal(t, 3, m.HistorySize())
}

func TestBuildWithoutSkillModel(t *testing.T) {
	svc := newService(club.NewMock(history()...), nil, metrics.NewMock())

	data, err := svc.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, data.SkillAvailable)
	assert.Empty(t, data.Skill)
	assert.Empty(t, data.Leaderboard.Entries)
	assert.Equal(t, ranking.NoTopPlayer, data.Leaderboard.TopPlayer)
	assert.Equal(t, 3, data.Leaderboard.TotalMatches)
	assert.Len(t, data.Elo, 4, "Elo does not depend on the skill model")
}

func TestBuildEmptyHistory(t *testing.T) {
	svc := newService(club.NewMock(), rating.NewTrueSkill(), metrics.NewMock())

	data, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data.Stats.Ranked)
	assert.Empty(t, data.Stats.Recent)
	assert.Empty(t, data.Stats.Players)
	assert.Empty(t, data.Elo)
	assert.Empty(t, data.Skill)
	assert.Equal(t, ranking.NoTopPlayer, data.Leaderboard.TopPlayer)
}

func TestBuildStoreError(t *testing.T) {
	store := club.NewMock()
	store.GetMatchesFunc = func() ([]match.Record, error) {
		return nil, errors.New("db down")
	}
	m := metrics.NewMock()
	svc := newService(store, rating.NewTrueSkill(), m)

	_, err := svc.Build(context.Background())
	assert.Error(t, err)
	assert.Zero(t, m.RatingComputations())
}

func TestEloHistory(t *testing.T) {
	svc := newService(club.NewMock(history()...), rating.NewTrueSkill(), metrics.NewMock())
	ctx := context.Background()

	all, err := svc.EloHistory(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 12)

	ana, err := svc.EloHistory(ctx, "Ana")
	require.NoError(t, err)
	require.Len(t, ana, 3)
	assert.InDelta(t, 1016, ana[0].Elo, 1e-9)

	_, err = svc.EloHistory(ctx, "Zoe")
	assert.ErrorIs(t, err, dashboard.ErrPlayerNotFound)
}

func TestPlayer(t *testing.T) {
	svc := newService(club.NewMock(history()...), rating.NewTrueSkill(), metrics.NewMock())
	ctx := context.Background()

	profile, err := svc.Player(ctx, " ana ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Player)
	assert.Equal(t, 3, profile.Aggregate.Matches)
	assert.Equal(t, 2, profile.Aggregate.Wins)
	require.NotNil(t, profile.Elo)
	require.NotNil(t, profile.Skill)
	assert.Equal(t, 2, profile.Rank)
	assert.Len(t, profile.Partners, 2)

	_, err = svc.Player(ctx, "Zoe")
	assert.ErrorIs(t, err, dashboard.ErrPlayerNotFound)
}
