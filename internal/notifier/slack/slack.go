package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/notifier"
	"github.com/mauv0809/padel-ratings/internal/ranking"
	"github.com/slack-go/slack"
)

// leaderboardSize caps the number of players posted to the channel.
const leaderboardSize = 10

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(fallbackText(message), false),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(ctx context.Context, rec match.Record, lb ranking.Leaderboard, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatResultNotification(rec, lb), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, lb ranking.Leaderboard, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatLeaderboard(lb), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(lb ranking.Leaderboard) (any, error) {
	return s.formatLeaderboard(lb), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(profile dashboard.PlayerProfile) (any, error) {
	return s.formatPlayerStats(profile), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatResultNotification creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatResultNotification(rec match.Record, lb ranking.Leaderboard) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match recorded! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := rec.Date.Format("Monday 02 Jan 2006")
	if rec.Source != "" && rec.Source != match.SourceManual {
		details += fmt.Sprintf(" (via %s)", rec.Source)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, false, false), nil, nil))

	team1, team2 := teamName(rec.Team1), teamName(rec.Team2)
	resultsFields := make([]*slack.TextBlockObject, 0, len(rec.Sets))
	for i, set := range rec.Sets {
		setText := fmt.Sprintf("Set %d\n• %s: %d\n• %s: %d", i+1, team1, set.Team1, team2, set.Team2)
		resultsFields = append(resultsFields, slack.NewTextBlockObject("plain_text", setText, true, false))
	}
	resultHeaderText := fmt.Sprintf("Result: %s won! 🏆", teamName(rec.Winners()))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultHeaderText, true, false), resultsFields, nil))

	if top := lb.Top(3); len(top) > 0 {
		parts := make([]string, 0, len(top))
		for i, e := range top {
			parts = append(parts, fmt.Sprintf("%s %s %.2f", medal(i+1), e.Player, e.Conservative))
		}
		text := "Top of the table: " + strings.Join(parts, " · ")
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", text, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(lb ranking.Leaderboard) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(lb.Entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No ratings available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, e := range lb.Top(leaderboardSize) {
		rank := i + 1
		playerText := fmt.Sprintf("%d. %s %s\n> Skill: %.2f (μ %.2f, σ %.2f) | Match Win %%: %.1f%% (%d/%d)",
			rank,
			medal(rank),
			e.Player,
			e.Conservative,
			e.Mu,
			e.Sigma,
			e.WinRate,
			e.Wins,
			e.Matches,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	footer := fmt.Sprintf("Based on %d matches", lb.TotalMatches)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", footer, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(p dashboard.PlayerProfile) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", p.Player)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	lines := make([]string, 0, 6)
	if p.Skill != nil {
		lines = append(lines, fmt.Sprintf("> *Rank*: %d\n> *Skill*: %.2f (μ %.2f, σ %.2f)", p.Rank, p.Skill.Conservative, p.Skill.Mu, p.Skill.Sigma))
	}
	if p.Elo != nil {
		lines = append(lines, fmt.Sprintf("> *Elo*: %.1f", p.Elo.Elo))
	}
	a := p.Aggregate
	lines = append(lines,
		fmt.Sprintf("> *Match Win %%*: %.1f%% (%d/%d)", a.WinRate, a.Wins, a.Matches),
		fmt.Sprintf("> *Sets*: %d won, %d lost", a.SetsWon, a.SetsLost),
		fmt.Sprintf("> *Games*: %d won, %d lost", a.GamesWon, a.GamesLost),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))

	if len(p.Partners) > 0 {
		best := p.Partners[0]
		partner := best.Players[0]
		if partner == p.Player {
			partner = best.Players[1]
		}
		text := fmt.Sprintf("Best partner: %s (%.1f%% over %d matches)", partner, best.WinRate, best.Matches)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", text, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func teamName(t match.Team) string {
	return t.A + " & " + t.B
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// fallbackText is shown in notifications where blocks are not rendered.
func fallbackText(message slack.Message) string {
	for _, b := range message.Blocks.BlockSet {
		if h, ok := b.(*slack.HeaderBlock); ok && h.Text != nil {
			return h.Text.Text
		}
	}
	return "Padel ratings update"
}
