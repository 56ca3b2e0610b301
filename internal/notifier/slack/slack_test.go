package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/ranking"
	"github.com/mauv0809/padel-ratings/internal/rating"
	"github.com/mauv0809/padel-ratings/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testRecord() match.Record {
	return match.Record{
		ID:     "m1",
		Date:   time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC),
		Team1:  match.Team{A: "Player A", B: "Player B"},
		Team2:  match.Team{A: "Player C", B: "Player D"},
		Sets:   []match.SetScore{{Team1: 6, Team2: 2}, {Team1: 7, Team2: 5}},
		Winner: match.Team1,
	}
}

func testLeaderboard() ranking.Leaderboard {
	return ranking.Leaderboard{
		Entries: []ranking.Entry{
			{Player: "Player A", Mu: 29.2, Sigma: 7.19, Conservative: 7.63, Matches: 3, Wins: 2, Losses: 1, WinRate: 66.7},
			{Player: "Player B", Mu: 27.1, Sigma: 7.19, Conservative: 5.53, Matches: 3, Wins: 2, Losses: 1, WinRate: 66.7},
			{Player: "Player C", Mu: 22.9, Sigma: 7.19, Conservative: 1.33, Matches: 3, Wins: 1, Losses: 2, WinRate: 33.3},
			{Player: "Player D", Mu: 20.8, Sigma: 7.19, Conservative: -0.77, Matches: 3, Wins: 1, Losses: 2, WinRate: 33.3},
		},
		TotalMatches: 3,
		TopPlayer:    "Player A",
		TopScore:     7.63,
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendResultNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())
	err := notifier.SendResultNotification(context.Background(), testRecord(), testLeaderboard(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendResultNotification")
}

func TestFormatResultNotification(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatResultNotification(testRecord(), testLeaderboard())

	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🎾 Match recorded! 🎾", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Wednesday 09 Jul 2025", details.Text.Text)

	resultsSection, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Result: Player A & Player B won! 🏆", resultsSection.Text.Text)
	require.Len(t, resultsSection.Fields, 2)
	assert.Equal(t, "Set 1\n• Player A & Player B: 6\n• Player C & Player D: 2", resultsSection.Fields[0].Text)
	assert.Equal(t, "Set 2\n• Player A & Player B: 7\n• Player C & Player D: 5", resultsSection.Fields[1].Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	top, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Top of the table: 🥇 Player A 7.63 · 🥈 Player B 5.53 · 🥉 Player C 1.33", top.Text)
}

func TestFormatResultNotification_WithoutRatings(t *testing.T) {
	rec := testRecord()
	rec.Source = match.SourcePlaytomic
	client := &Notifier{channelID: "C123"}
	msg := client.formatResultNotification(rec, ranking.Merge(nil, nil))

	require.Len(t, msg.Blocks.BlockSet, 3, "No leaderboard context without skill ratings")
	details := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Wednesday 09 Jul 2025 (via playtomic)", details.Text.Text)
}

func TestFormatLeaderboard(t *testing.T) {
	t.Run("displays leaderboard with ratings", func(t *testing.T) {
		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(testLeaderboard())

		require.Len(t, msg.Blocks.BlockSet, 6, "Expected header, 4 players and footer")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Player Leaderboard 🏆", header.Text.Text)

		player1, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player1.Text.Text, "1. 🥇 Player A")
		assert.Contains(t, player1.Text.Text, "> Skill: 7.63 (μ 29.20, σ 7.19) | Match Win %: 66.7% (2/3)")

		player4, ok := msg.Blocks.BlockSet[4].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player4.Text.Text, "4.  Player D")
		assert.Contains(t, player4.Text.Text, "Skill: -0.77")

		footer, ok := msg.Blocks.BlockSet[5].(*slackapi.ContextBlock)
		require.True(t, ok)
		assert.Equal(t, "Based on 3 matches", footer.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
	})

	t.Run("displays message when no ratings are available", func(t *testing.T) {
		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(ranking.Merge(nil, nil))

		require.Len(t, msg.Blocks.BlockSet, 2, "Expected 2 blocks (header + message)")
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No ratings available yet. Go play some matches!", section.Text.Text)
	})
}

func TestFormatPlayerStats(t *testing.T) {
	profile := dashboard.PlayerProfile{
		Player: "Player A",
		Aggregate: stats.PlayerAggregate{
			Player: "Player A", Matches: 3, Wins: 2, Losses: 1, WinRate: 66.7,
			SetsWon: 5, SetsLost: 3, GamesWon: 40, GamesLost: 33,
		},
		Elo:   &rating.EloRating{Player: "Player A", Elo: 1014.53},
		Skill: &rating.SkillRating{Player: "Player A", Mu: 26.06, Sigma: 6.74, Conservative: 5.83},
		Rank:  2,
		Partners: []stats.Partnership{
			{Players: [2]string{"Player A", "Player B"}, Matches: 2, Wins: 1, Losses: 1, WinRate: 50},
		},
	}

	client := &Notifier{channelID: "C123"}
	msg := client.formatPlayerStats(profile)
	require.Len(t, msg.Blocks.BlockSet, 3)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "🏆 Stats for Player A 🏆", header.Text.Text)

	body := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "mrkdwn", body.Text.Type)
	assert.Contains(t, body.Text.Text, "> *Rank*: 2")
	assert.Contains(t, body.Text.Text, "> *Elo*: 1014.5")
	assert.Contains(t, body.Text.Text, "> *Match Win %*: 66.7% (2/3)")
	assert.Contains(t, body.Text.Text, "> *Sets*: 5 won, 3 lost")

	partner := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	assert.Equal(t, "Best partner: Player B (50.0% over 2 matches)", partner.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
}

func TestFormatPlayerNotFound(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	resp, err := client.FormatPlayerNotFoundResponse("Zoe")
	require.NoError(t, err)

	msg, ok := resp.(slackapi.Message)
	require.True(t, ok)
	section := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Contains(t, section.Text.Text, "*Zoe*")
}
