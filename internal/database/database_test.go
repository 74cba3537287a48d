package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"ladder_groups", "players", "matches", "group_history"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_EnforcesConstraints(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO ladder_groups (id, name, level, created_at) VALUES ('g1', 'A', 1, 1)`)
	require.NoError(t, err)

	t.Run("unique level", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO ladder_groups (id, name, level, created_at) VALUES ('g2', 'B', 1, 2)`)
		assert.Error(t, err)
	})

	t.Run("player group must exist", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO players (id, name, group_id, created_at) VALUES ('p1', 'P', 'missing', 1)`)
		assert.Error(t, err)
	})

	t.Run("won never exceeds played", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO players (id, name, group_id, matches_played, matches_won, created_at) VALUES ('p2', 'P', 'g1', 1, 2, 1)`)
		assert.Error(t, err)
	})

	t.Run("winner must be a side", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO players (id, name, group_id, created_at) VALUES ('a', 'A', 'g1', 1), ('b', 'B', 'g1', 2), ('c', 'C', 'g1', 3)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO matches (id, side_a_id, side_b_id, winner_id, status, group_id, created_at) VALUES ('m1', 'a', 'b', 'c', 'FINISHED', 'g1', 1)`)
		assert.Error(t, err)
	})
}
