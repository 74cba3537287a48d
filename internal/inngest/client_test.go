package inngest

import (
	"context"
	"errors"
	"testing"

	inngesterrors "github.com/inngest/inngestgo/errors"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error)

func (f runnerFunc) ProcessTransitions(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error) {
	return f(ctx, dryRun)
}

func TestProcessTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("summarises the run", func(t *testing.T) {
		c := &client{runner: runnerFunc(func(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error) {
			assert.False(t, dryRun)
			return []*ranking.TransitionReport{
				{Demoted: []ranking.Movement{{PlayerID: "d1"}, {PlayerID: "d2"}}},
				{Promoted: []ranking.Movement{{PlayerID: "p1"}, {PlayerID: "p2"}}},
			}, nil
		})}
		summary, err := c.processTransitions(ctx)
		require.NoError(t, err)
		assert.Equal(t, RunSummary{Groups: 2, Promoted: 2, Demoted: 2}, summary)
	})

	t.Run("a concurrent run is skipped, not retried", func(t *testing.T) {
		c := &client{runner: runnerFunc(func(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error) {
			return nil, ranking.ErrTransitionInProgress
		})}
		summary, err := c.processTransitions(ctx)
		require.NoError(t, err)
		assert.True(t, summary.Skipped)
	})

	t.Run("a failed run is not retried", func(t *testing.T) {
		boom := errors.New("failed to move player g3-p0 to group g2: disk full")
		calls := 0
		c := &client{runner: runnerFunc(func(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error) {
			calls++
			return nil, boom
		})}
		_, err := c.processTransitions(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.True(t, inngesterrors.IsNoRetryError(err), "the run must not be executed twice in one period")
		assert.Equal(t, 1, calls)
	})
}
