package ranking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finished(id, a, b, winner string) ranking.Match {
	return ranking.Match{ID: id, SideAID: a, SideBID: b, WinnerID: winner, Status: ranking.StatusFinished}
}

func TestComputePlayerScore(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		assert.Equal(t, ranking.Score{}, ranking.ComputePlayerScore("p1", nil))
	})

	t.Run("win", func(t *testing.T) {
		score := ranking.ComputePlayerScore("p1", []ranking.Match{finished("m1", "p1", "p2", "p1")})
		assert.Equal(t, ranking.Score{Points: 3, MatchesPlayed: 1, MatchesWon: 1}, score)
	})

	t.Run("loss", func(t *testing.T) {
		score := ranking.ComputePlayerScore("p2", []ranking.Match{finished("m1", "p1", "p2", "p1")})
		assert.Equal(t, ranking.Score{Points: 1, MatchesPlayed: 1, MatchesWon: 0}, score)
	})

	t.Run("non-finished matches do not count", func(t *testing.T) {
		matches := []ranking.Match{
			{ID: "m1", SideAID: "p1", SideBID: "p2", WinnerID: "p1", Status: ranking.StatusScheduled},
			{ID: "m2", SideAID: "p1", SideBID: "p2", Status: ranking.StatusCancelled},
		}
		assert.Equal(t, ranking.Score{}, ranking.ComputePlayerScore("p1", matches))
	})

	t.Run("finished without winner gives both sides a participation point", func(t *testing.T) {
		matches := []ranking.Match{finished("m1", "p1", "p2", "")}
		assert.Equal(t, ranking.Score{Points: 1, MatchesPlayed: 1}, ranking.ComputePlayerScore("p1", matches))
		assert.Equal(t, ranking.Score{Points: 1, MatchesPlayed: 1}, ranking.ComputePlayerScore("p2", matches))
	})

	t.Run("matches of other players are ignored", func(t *testing.T) {
		matches := []ranking.Match{finished("m1", "p2", "p3", "p2")}
		assert.Equal(t, ranking.Score{}, ranking.ComputePlayerScore("p1", matches))
	})

	t.Run("idempotent", func(t *testing.T) {
		matches := []ranking.Match{
			finished("m1", "p1", "p2", "p1"),
			finished("m2", "p3", "p1", "p3"),
			finished("m3", "p1", "p4", "p1"),
		}
		first := ranking.ComputePlayerScore("p1", matches)
		second := ranking.ComputePlayerScore("p1", matches)
		assert.Equal(t, first, second)
		assert.Equal(t, ranking.Score{Points: 7, MatchesPlayed: 3, MatchesWon: 2}, first)
	})
}

func TestMatchValidate(t *testing.T) {
	assert.NoError(t, finished("m1", "p1", "p2", "p1").Validate())
	assert.NoError(t, finished("m1", "p1", "p2", "").Validate())
	assert.ErrorIs(t, finished("m1", "p1", "p1", "").Validate(), ranking.ErrSameSides)
	assert.ErrorIs(t, finished("m1", "p1", "p2", "p3").Validate(), ranking.ErrWinnerNotASide)

	bad := finished("m1", "p1", "p2", "")
	bad.Status = "PLAYED"
	assert.ErrorIs(t, bad.Validate(), ranking.ErrInvalidStatus)
}

func TestRecomputePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the fresh score", func(t *testing.T) {
		store := ranking.NewMock()
		store.Players = []ranking.Player{{ID: "p1", Score: 42}}
		store.Matches = []ranking.Match{finished("m1", "p1", "p2", "p1")}
		engine := ranking.New(store)

		p, err := engine.RecomputePlayer(ctx, store.Players[0], false)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Score)

		stored, ok := store.Player("p1")
		require.True(t, ok)
		assert.Equal(t, 3, stored.Score)
		assert.Equal(t, 1, stored.MatchesWon)
	})

	t.Run("dry run does not write", func(t *testing.T) {
		store := ranking.NewMock()
		store.Players = []ranking.Player{{ID: "p1", Score: 42}}
		store.Matches = []ranking.Match{finished("m1", "p1", "p2", "p1")}
		engine := ranking.New(store)

		p, err := engine.RecomputePlayer(ctx, store.Players[0], true)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Score)
		assert.Empty(t, store.SavePlayerScoreCalls)

		stored, _ := store.Player("p1")
		assert.Equal(t, 42, stored.Score)
	})

	t.Run("lookup failure", func(t *testing.T) {
		store := ranking.NewMock()
		store.MatchesInvolvingFunc = func(context.Context, string) ([]ranking.Match, error) {
			return nil, errors.New("boom")
		}
		engine := ranking.New(store)

		_, err := engine.RecomputePlayer(ctx, ranking.Player{ID: "p1"}, false)
		assert.ErrorContains(t, err, "p1")
		assert.Empty(t, store.SavePlayerScoreCalls)
	})
}
