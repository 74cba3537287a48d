package ranking

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// ComputePlayerScore derives the point tuple of a player from their match
// history. Only finished matches count: the winner gets PointsForWin, every
// other participant PointsForParticipant. A finished match without a winner
// therefore gives both sides PointsForParticipant. Matches the player is not
// part of are ignored.
func ComputePlayerScore(playerID string, matches []Match) Score {
	var score Score
	for _, m := range matches {
		if m.Status != StatusFinished || !m.Involves(playerID) {
			continue
		}
		score.MatchesPlayed++
		if m.WinnerID == playerID {
			score.Points += PointsForWin
			score.MatchesWon++
		} else {
			score.Points += PointsForParticipant
		}
	}
	return score
}

// RecomputePlayer recomputes the player's score from storage and overwrites the
// persisted tuple. The returned snapshot carries the fresh score.
func (e *Engine) RecomputePlayer(ctx context.Context, player Player, dryRun bool) (Player, error) {
	return e.recompute(ctx, e.writer(dryRun), player)
}

func (e *Engine) recompute(ctx context.Context, w Writer, player Player) (Player, error) {
	matches, err := e.store.MatchesInvolving(ctx, player.ID)
	if err != nil {
		return player, fmt.Errorf("failed to load matches for player %s: %w", player.ID, err)
	}
	score := ComputePlayerScore(player.ID, matches)
	if err := w.SavePlayerScore(ctx, player.ID, score); err != nil {
		return player, fmt.Errorf("failed to save score for player %s: %w", player.ID, err)
	}
	log.Debug("Recomputed player score", "playerID", player.ID, "points", score.Points, "played", score.MatchesPlayed, "won", score.MatchesWon)

	player.Score = score.Points
	player.MatchesPlayed = score.MatchesPlayed
	player.MatchesWon = score.MatchesWon
	return player, nil
}
