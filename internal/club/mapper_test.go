package club_test

import (
	"context"
	"testing"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	players := []ranking.Player{
		{ID: "1", Name: "Rafael Nadal"},
		{ID: "2", Name: "Roger Federer"},
		{ID: "3", Name: "Rafa Nadal-Parera"},
	}

	suggestions := club.Suggest("rafael  NADAL", players)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "1", suggestions[0].Player.ID)
	assert.InDelta(t, 1.0, suggestions[0].Confidence, 0.001)

	assert.Empty(t, club.Suggest("Serena Williams", players))
}

func TestPlayerMapperResolve(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()

	g, _ := store.AddGroup(ctx, "Champions", 1)
	ana, err := store.AddPlayer(ctx, "Ana Ivanovic", g.ID)
	require.NoError(t, err)
	_, err = store.AddPlayer(ctx, "Bea Bielik", g.ID)
	require.NoError(t, err)

	mapper := club.NewPlayerMapper(store)

	t.Run("dry run resolves without linking", func(t *testing.T) {
		p, err := mapper.Resolve(ctx, "pt-ana", "Ana Ivanovic", true)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, ana.ID, p.ID)

		linked, err := store.GetPlayerByPlaytomicID(ctx, "pt-ana")
		require.NoError(t, err)
		assert.Nil(t, linked)
	})

	t.Run("links a confident name match", func(t *testing.T) {
		p, err := mapper.Resolve(ctx, "pt-ana", "Ana Ivanović", false)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, ana.ID, p.ID)

		linked, err := store.GetPlayerByPlaytomicID(ctx, "pt-ana")
		require.NoError(t, err)
		require.NotNil(t, linked)
		assert.Equal(t, ana.ID, linked.ID)
	})

	t.Run("uses an existing link", func(t *testing.T) {
		p, err := mapper.Resolve(ctx, "pt-ana", "Someone Else", false)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, ana.ID, p.ID)
	})

	t.Run("unknown players stay unresolved", func(t *testing.T) {
		p, err := mapper.Resolve(ctx, "pt-zed", "Zed Zulu", false)
		require.NoError(t, err)
		assert.Nil(t, p)

		unlinked, err := store.GetUnlinkedPlayers(ctx)
		require.NoError(t, err)
		require.Len(t, unlinked, 1)
		assert.Equal(t, "Bea Bielik", unlinked[0].Name)
	})
}
