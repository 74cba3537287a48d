package ranking

import (
	"context"

	"github.com/charmbracelet/log"
)

const defaultConcurrency = 4

// New creates an Engine backed by store.
func New(store Store) *Engine {
	return &Engine{
		store:       store,
		concurrency: defaultConcurrency,
	}
}

func (e *Engine) writer(dryRun bool) Writer {
	if dryRun {
		return dryRunWriter{}
	}
	return e.store
}

// dryRunWriter logs the writes it would have made.
type dryRunWriter struct{}

func (dryRunWriter) SavePlayerScore(_ context.Context, playerID string, score Score) error {
	log.Info("[Dry Run] Would save player score", "playerID", playerID, "points", score.Points, "played", score.MatchesPlayed, "won", score.MatchesWon)
	return nil
}

func (dryRunWriter) MovePlayer(_ context.Context, move Move) error {
	log.Info("[Dry Run] Would move player", "playerID", move.PlayerID, "from", move.FromGroupID, "to", move.ToGroupID, "direction", move.Direction)
	return nil
}
