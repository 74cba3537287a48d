package notifier

import "github.com/mauv0809/club-ladder/internal/ranking"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a ladder run
	SendTransitionSummary(reports []*ranking.TransitionReport, dryRun bool) error
	// After a result was recorded
	SendMatchResult(match ranking.Match, sideA, sideB ranking.Player, dryRun bool) error

	// For formatting responses for slash commands
	FormatLadderResponse(standings []ranking.GroupStanding) (any, error)
	FormatGroupResponse(standing ranking.GroupStanding) (any, error)
	FormatGroupNotFoundResponse(query string) (any, error)
}
