package ranking_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeTierLadder() *ladderFixture {
	f := newLadder()
	for level := 1; level <= 3; level++ {
		g := f.group(fmt.Sprintf("g%d", level), level)
		for i, pts := range []int{50, 40, 30, 20, 10} {
			f.player(fmt.Sprintf("%s-p%d", g.ID, i), g.ID, pts)
		}
	}
	return f
}

func TestRunLadderTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("every tier exchanges with its neighbours once", func(t *testing.T) {
		f := threeTierLadder()
		engine := ranking.New(f.store)

		reports, err := engine.RunLadderTransitions(ctx, false)
		require.NoError(t, err)
		require.Len(t, reports, 3)

		assert.Equal(t, []int{1, 2, 3}, []int{reports[0].GroupLevel, reports[1].GroupLevel, reports[2].GroupLevel})
		assert.Equal(t, ranking.MessageNoPromotions, reports[0].Message)
		assert.Equal(t, ranking.MessageProcessed, reports[1].Message)
		assert.Equal(t, ranking.MessageNoDemotions, reports[2].Message)

		// Players demoted from g1 into g2 are not ranked again in g2.
		assert.Equal(t, []string{"g2-p0", "g2-p1"}, movedIDs(reports[1].Promoted))
		assert.Equal(t, []string{"g2-p3", "g2-p4"}, movedIDs(reports[1].Demoted))
		assert.Len(t, f.store.MovePlayerCalls, 8)

		seen := map[string]bool{}
		for _, m := range f.store.MovePlayerCalls {
			assert.False(t, seen[m.PlayerID], "player %s moved twice", m.PlayerID)
			seen[m.PlayerID] = true
		}

		assert.Equal(t, "g2", f.groupOf(t, "g1-p3"))
		assert.Equal(t, "g1", f.groupOf(t, "g2-p0"))
		assert.Equal(t, "g3", f.groupOf(t, "g2-p4"))
		assert.Equal(t, "g2", f.groupOf(t, "g3-p1"))
		assert.Equal(t, "g3", f.groupOf(t, "g3-p4"))

		for _, id := range []string{"g1", "g2", "g3"} {
			members, err := f.store.GroupMembers(ctx, id)
			require.NoError(t, err)
			assert.Len(t, members, ranking.GroupSize, "group %s", id)
		}
	})

	t.Run("off-size group does not block the others", func(t *testing.T) {
		f := threeTierLadder()
		f.player("extra", "g2", 0)
		engine := ranking.New(f.store)

		reports, err := engine.RunLadderTransitions(ctx, false)
		require.NoError(t, err)
		require.Len(t, reports, 3)

		assert.Len(t, reports[1].Errors, 1)
		assert.Equal(t, ranking.MessageSkipped, reports[1].Message)
		assert.Len(t, reports[0].Demoted, 2)
		assert.Len(t, reports[2].Promoted, 2)
	})

	t.Run("storage failure stops the run", func(t *testing.T) {
		f := threeTierLadder()
		errDown := errors.New("connection reset")
		f.store.MovePlayerFunc = func(_ context.Context, move ranking.Move) error {
			if move.PlayerID == "g2-p1" {
				return errDown
			}
			return nil
		}
		engine := ranking.New(f.store)

		reports, err := engine.RunLadderTransitions(ctx, false)
		require.ErrorIs(t, err, errDown)
		assert.ErrorContains(t, err, "g2")
		require.Len(t, reports, 2, "the failing group keeps its partial report")
		assert.Equal(t, "g1", reports[0].GroupID)
		assert.Equal(t, "g2", reports[1].GroupID)
		assert.Equal(t, []string{"g2-p0"}, movedIDs(reports[1].Promoted), "the committed promotion is reported")
		assert.Empty(t, reports[1].Demoted)

		for _, m := range f.store.MovePlayerCalls {
			assert.NotEqual(t, "g3", m.FromGroupID, "groups after the failure are not processed")
		}
	})

	t.Run("dry run", func(t *testing.T) {
		f := threeTierLadder()
		engine := ranking.New(f.store)

		reports, err := engine.RunLadderTransitions(ctx, true)
		require.NoError(t, err)
		require.Len(t, reports, 3)
		assert.Len(t, reports[1].Promoted, 2)
		assert.Empty(t, f.store.MovePlayerCalls)
		assert.Empty(t, f.store.SavePlayerScoreCalls)
	})

	t.Run("rejects a concurrent run", func(t *testing.T) {
		f := threeTierLadder()
		entered := make(chan struct{})
		release := make(chan struct{})
		f.store.GroupMembersFunc = func(context.Context, string) ([]ranking.Player, error) {
			close(entered)
			<-release
			return nil, nil
		}
		engine := ranking.New(f.store)

		done := make(chan error, 1)
		go func() {
			_, err := engine.RunGroupTransition(ctx, ranking.Group{ID: "g2", Name: "Group g2", Level: 2}, false)
			done <- err
		}()
		<-entered

		_, err := engine.RunLadderTransitions(ctx, false)
		assert.ErrorIs(t, err, ranking.ErrTransitionInProgress)

		close(release)
		require.NoError(t, <-done)
	})
}
