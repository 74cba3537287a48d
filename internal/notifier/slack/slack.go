package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/slack-go/slack"
)

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
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
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

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
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

func (s *Notifier) SendTransitionSummary(reports []*ranking.TransitionReport, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatTransitionSummary(reports), dryRun)
	return err
}

func (s *Notifier) SendMatchResult(match ranking.Match, sideA, sideB ranking.Player, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchResult(match, sideA, sideB), dryRun)
	return err
}

// FormatLadderResponse formats the whole ladder for a slash command response.
func (s *Notifier) FormatLadderResponse(standings []ranking.GroupStanding) (any, error) {
	return s.formatLadder(standings), nil
}

// FormatGroupResponse formats one group's ranking for a slash command response.
func (s *Notifier) FormatGroupResponse(standing ranking.GroupStanding) (any, error) {
	return s.formatGroup(standing), nil
}

// FormatGroupNotFoundResponse formats a group not found message for a slash command response.
func (s *Notifier) FormatGroupNotFoundResponse(query string) (any, error) {
	text := fmt.Sprintf("Sorry, I couldn't find a group matching '%s'.", query)
	return slack.NewBlockMessage(plainSection(text)), nil
}

// formatTransitionSummary lists every group's moves, one section per group.
func (s *Notifier) formatTransitionSummary(reports []*ranking.TransitionReport) slack.Message {
	blocks := []slack.Block{header("🎾 Ladder update 🎾")}

	if len(reports) == 0 {
		blocks = append(blocks, plainSection("No groups on the ladder."))
		return slack.NewBlockMessage(blocks...)
	}

	for _, r := range reports {
		var lines []string
		lines = append(lines, fmt.Sprintf("*%s* (level %d)", r.GroupName, r.GroupLevel))
		for _, m := range r.Promoted {
			lines = append(lines, fmt.Sprintf("⬆️ %s → %s", m.PlayerName, m.NewGroupName))
		}
		for _, m := range r.Demoted {
			lines = append(lines, fmt.Sprintf("⬇️ %s → %s", m.PlayerName, m.NewGroupName))
		}
		for _, e := range r.Errors {
			lines = append(lines, fmt.Sprintf("⚠️ %s", e))
		}
		if len(r.Promoted) == 0 && len(r.Demoted) == 0 && len(r.Errors) == 0 {
			lines = append(lines, fmt.Sprintf("_%s_", r.Message))
		}
		blocks = append(blocks, slack.NewDividerBlock(), mrkdwnSection(strings.Join(lines, "\n")))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatMatchResult(match ranking.Match, sideA, sideB ranking.Player) slack.Message {
	blocks := []slack.Block{header("🎾 Match finished! 🎾")}

	var text string
	switch match.WinnerID {
	case sideA.ID:
		text = fmt.Sprintf("🏆 *%s* beat %s", sideA.Name, sideB.Name)
	case sideB.ID:
		text = fmt.Sprintf("🏆 *%s* beat %s", sideB.Name, sideA.Name)
	default:
		text = fmt.Sprintf("%s and %s finished without a winner", sideA.Name, sideB.Name)
	}
	blocks = append(blocks, mrkdwnSection(text))

	standings := fmt.Sprintf("%s: %d pts\n%s: %d pts", sideA.Name, sideA.Score, sideB.Name, sideB.Score)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", standings, false, false)))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatLadder(standings []ranking.GroupStanding) slack.Message {
	blocks := []slack.Block{header("🏆 Club Ladder 🏆")}

	if len(standings) == 0 {
		blocks = append(blocks, plainSection("No groups found."))
		return slack.NewBlockMessage(blocks...)
	}

	for _, st := range standings {
		blocks = append(blocks, slack.NewDividerBlock(), mrkdwnSection(groupText(st)))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatGroup(st ranking.GroupStanding) slack.Message {
	return slack.NewBlockMessage(
		header(fmt.Sprintf("🏆 %s 🏆", st.Group.Name)),
		mrkdwnSection(groupText(st)),
	)
}

func groupText(st ranking.GroupStanding) string {
	lines := []string{fmt.Sprintf("*%s* (level %d)", st.Group.Name, st.Group.Level)}
	if len(st.Players) == 0 {
		return lines[0] + "\nNo players."
	}
	for i, p := range st.Players {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s: %d pts (%d/%d won)", rank, medal, p.Name, p.Score, p.MatchesWon, p.MatchesPlayed))
	}
	return strings.Join(lines, "\n")
}

func header(text string) slack.Block {
	return slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", text, true, false))
}

func plainSection(text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func mrkdwnSection(text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil)
}
