package club_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), teardown
}

func TestGroups(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()

	second, err := store.AddGroup(ctx, "Challengers", 2)
	require.NoError(t, err)
	first, err := store.AddGroup(ctx, "Champions", 1)
	require.NoError(t, err)

	_, err = store.AddGroup(ctx, "Impostors", 1)
	assert.ErrorIs(t, err, club.ErrDuplicateLevel)

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, first.ID, groups[0].ID)
	assert.Equal(t, second.ID, groups[1].ID)

	g, err := store.GroupByLevel(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Challengers", g.Name)

	g, err = store.GroupByLevel(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = store.GetGroup(ctx, "missing")
	assert.ErrorIs(t, err, club.ErrGroupNotFound)
}

func TestPlayers(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()
	faker := gofakeit.New(7)

	g, err := store.AddGroup(ctx, "Champions", 1)
	require.NoError(t, err)

	_, err = store.AddPlayer(ctx, faker.Name(), "missing")
	assert.ErrorIs(t, err, club.ErrGroupNotFound)

	var ids []string
	for i := 0; i < 3; i++ {
		p, err := store.AddPlayer(ctx, faker.Name(), g.ID)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	members, err := store.GroupMembers(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	for i, m := range members {
		assert.Equal(t, ids[i], m.ID, "members are returned in registration order")
	}

	p, err := store.GetPlayer(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, g.ID, p.GroupID)
	assert.Zero(t, p.Score)

	_, err = store.GetPlayer(ctx, "missing")
	assert.ErrorIs(t, err, club.ErrPlayerNotFound)

	all, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSavePlayerScore(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()

	g, _ := store.AddGroup(ctx, "Champions", 1)
	p, err := store.AddPlayer(ctx, "Ana Ivanovic", g.ID)
	require.NoError(t, err)

	err = store.SavePlayerScore(ctx, p.ID, ranking.Score{Points: 7, MatchesPlayed: 3, MatchesWon: 2})
	require.NoError(t, err)

	got, err := store.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Score)
	assert.Equal(t, 3, got.MatchesPlayed)
	assert.Equal(t, 2, got.MatchesWon)

	err = store.SavePlayerScore(ctx, "missing", ranking.Score{})
	assert.ErrorIs(t, err, club.ErrPlayerNotFound)
}

func TestRecordMatch(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()

	g1, _ := store.AddGroup(ctx, "Champions", 1)
	g2, _ := store.AddGroup(ctx, "Challengers", 2)
	a, _ := store.AddPlayer(ctx, "Ana", g1.ID)
	b, _ := store.AddPlayer(ctx, "Bea", g1.ID)
	c, _ := store.AddPlayer(ctx, "Cid", g2.ID)

	t.Run("stores a finished match", func(t *testing.T) {
		m, err := store.RecordMatch(ctx, ranking.Match{SideAID: a.ID, SideBID: b.ID, WinnerID: a.ID, Status: ranking.StatusFinished, GroupID: g1.ID})
		require.NoError(t, err)
		assert.NotEmpty(t, m.ID)
		assert.NotZero(t, m.CompletedAt)
	})

	t.Run("stores a match without winner", func(t *testing.T) {
		_, err := store.RecordMatch(ctx, ranking.Match{SideAID: b.ID, SideBID: a.ID, Status: ranking.StatusScheduled, GroupID: g1.ID})
		require.NoError(t, err)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := store.RecordMatch(ctx, ranking.Match{SideAID: a.ID, SideBID: a.ID, Status: ranking.StatusFinished, GroupID: g1.ID})
		assert.ErrorIs(t, err, ranking.ErrSameSides)

		_, err = store.RecordMatch(ctx, ranking.Match{SideAID: a.ID, SideBID: b.ID, WinnerID: c.ID, Status: ranking.StatusFinished, GroupID: g1.ID})
		assert.ErrorIs(t, err, ranking.ErrWinnerNotASide)

		_, err = store.RecordMatch(ctx, ranking.Match{SideAID: a.ID, SideBID: "ghost", Status: ranking.StatusFinished, GroupID: g1.ID})
		assert.ErrorIs(t, err, club.ErrPlayerNotFound)

		_, err = store.RecordMatch(ctx, ranking.Match{SideAID: a.ID, SideBID: c.ID, Status: ranking.StatusFinished, GroupID: g1.ID})
		assert.ErrorIs(t, err, club.ErrPlayerOutsideGroup)

		_, err = store.RecordMatch(ctx, ranking.Match{SideAID: a.ID, SideBID: b.ID, Status: ranking.StatusFinished, GroupID: "missing"})
		assert.ErrorIs(t, err, club.ErrGroupNotFound)
	})

	t.Run("external ids are imported once", func(t *testing.T) {
		m := ranking.Match{SideAID: a.ID, SideBID: b.ID, WinnerID: b.ID, Status: ranking.StatusFinished, GroupID: g1.ID, ExternalID: "pt-1"}
		_, err := store.RecordMatch(ctx, m)
		require.NoError(t, err)

		exists, err := store.HasExternalMatch(ctx, "pt-1")
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = store.RecordMatch(ctx, m)
		assert.ErrorIs(t, err, club.ErrDuplicateMatch)
	})

	t.Run("matches involving a player cover both sides", func(t *testing.T) {
		matches, err := store.MatchesInvolving(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, a.ID, matches[0].WinnerID)
		assert.Empty(t, matches[1].WinnerID)
		assert.Equal(t, ranking.StatusScheduled, matches[1].Status)
		assert.Equal(t, "pt-1", matches[2].ExternalID)

		matches, err = store.MatchesInvolving(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestMovePlayer(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()

	g1, _ := store.AddGroup(ctx, "Champions", 1)
	g2, _ := store.AddGroup(ctx, "Challengers", 2)
	p, _ := store.AddPlayer(ctx, "Ana", g2.ID)

	err := store.MovePlayer(ctx, ranking.Move{PlayerID: p.ID, FromGroupID: g2.ID, ToGroupID: g1.ID, Direction: ranking.Promotion})
	require.NoError(t, err)

	got, err := store.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, g1.ID, got.GroupID)

	history, err := store.PlayerHistory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Challengers", history[0].FromGroupName)
	assert.Equal(t, "Champions", history[0].ToGroupName)
	assert.Equal(t, ranking.Promotion, history[0].Direction)

	err = store.MovePlayer(ctx, ranking.Move{PlayerID: "missing", FromGroupID: g2.ID, ToGroupID: g1.ID, Direction: ranking.Promotion})
	assert.ErrorIs(t, err, club.ErrPlayerNotFound)

	history, err = store.PlayerHistory(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLadderTransitionsAgainstDatabase(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()
	faker := gofakeit.New(42)

	var groups []*ranking.Group
	members := map[string][]*ranking.Player{}
	for level := 1; level <= 3; level++ {
		g, err := store.AddGroup(ctx, fmt.Sprintf("Level %d", level), level)
		require.NoError(t, err)
		groups = append(groups, g)
		for i := 0; i < ranking.GroupSize; i++ {
			p, err := store.AddPlayer(ctx, faker.Name(), g.ID)
			require.NoError(t, err)
			members[g.ID] = append(members[g.ID], p)
		}
	}

	// In every group the first registered player beats everyone else.
	for _, g := range groups {
		top := members[g.ID][0]
		for _, other := range members[g.ID][1:] {
			_, err := store.RecordMatch(ctx, ranking.Match{SideAID: top.ID, SideBID: other.ID, WinnerID: top.ID, Status: ranking.StatusFinished, GroupID: g.ID})
			require.NoError(t, err)
		}
	}

	engine := ranking.New(store)
	reports, err := engine.RunLadderTransitions(ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	middle := reports[1]
	require.Len(t, middle.Promoted, 2)
	assert.Equal(t, members[groups[1].ID][0].ID, middle.Promoted[0].PlayerID)
	assert.Equal(t, groups[0].ID, middle.Promoted[0].NewGroupID)
	assert.Len(t, middle.Demoted, 2)

	leader, err := store.GetPlayer(ctx, members[groups[1].ID][0].ID)
	require.NoError(t, err)
	assert.Equal(t, groups[0].ID, leader.GroupID)
	assert.Equal(t, 12, leader.Score)
	assert.Equal(t, 4, leader.MatchesWon)

	for _, g := range groups {
		roster, err := store.GroupMembers(ctx, g.ID)
		require.NoError(t, err)
		assert.Len(t, roster, ranking.GroupSize)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store, teardown := setupTestDB(t)
	defer teardown()

	g, _ := store.AddGroup(ctx, "Champions", 1)
	_, err := store.AddPlayer(ctx, "Ana", g.ID)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
}
