package playtomic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSpecificMatch(t *testing.T) {
	mockJSONResponse := `{
		"owner_id": "user-123",
		"start_date": "2025-07-09T18:00:00",
		"end_date": "2025-07-09T19:30:00",
		"created_at": "2025-07-08T10:00:00",
		"status": "CONFIRMED",
		"game_status": "PLAYED",
		"results_status": "CONFIRMED",
		"resource_name": "Court 1",
		"tenant": { "tenant_id": "tenant-abc", "tenant_name": "Tennis Club" },
		"teams": [
			{ "team_id": "1", "team_result": "WON", "players": [{ "user_id": "user-123", "name": "Player A", "level_value": 3.5 }] },
			{ "team_id": "2", "team_result": "LOST", "players": [{ "user_id": "user-456", "name": "Player B" }] }
		],
		"results": [{
			"name": "Set 1",
			"scores": [{ "team_id": "1", "score": 6 }, { "team_id": "2", "score": 3 }]
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(), // Dummy client, not used in this specific test
		BaseURL:    server.URL,
	}

	match, err := client.GetSpecificMatch(context.Background(), "match-abc")

	require.NoError(t, err)
	assert.Equal(t, "match-abc", match.MatchID)
	assert.Equal(t, "user-123", match.OwnerID)
	assert.Equal(t, "Court 1", match.ResourceName)
	assert.Equal(t, GameStatusPlayed, match.GameStatus)
	assert.True(t, match.Finished())
	assert.NotEqual(t, int64(0), match.Start, "Start time should be parsed")
	require.Len(t, match.Teams, 2)
	assert.Equal(t, 3.5, match.Teams[0].Players[0].Level)
	assert.Equal(t, 6, match.Results[0].Scores["1"])

	a, b, winner, ok := match.Singles()
	require.True(t, ok)
	assert.Equal(t, "Player A", a.Name)
	assert.Equal(t, "Player B", b.Name)
	assert.Equal(t, "user-123", winner)
}

func TestGetSpecificMatch_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := APIClient{httpClient: server.Client(), apiClient: client.NewClient(), BaseURL: server.URL}

	_, err := client.GetSpecificMatch(context.Background(), "missing")
	assert.ErrorContains(t, err, "404")
}

func TestSingles(t *testing.T) {
	a := Player{UserID: "a", Name: "A"}
	b := Player{UserID: "b", Name: "B"}

	t.Run("winner by sets", func(t *testing.T) {
		m := Match{
			Teams: []Team{{ID: "t1", Players: []Player{a}}, {ID: "t2", Players: []Player{b}}},
			Results: []SetResult{
				{Name: "Set 1", Scores: map[string]int{"t1": 4, "t2": 6}},
				{Name: "Set 2", Scores: map[string]int{"t1": 6, "t2": 2}},
				{Name: "Set 3", Scores: map[string]int{"t1": 3, "t2": 6}},
			},
		}
		_, _, winner, ok := m.Singles()
		require.True(t, ok)
		assert.Equal(t, "b", winner)
	})

	t.Run("level result has no winner", func(t *testing.T) {
		m := Match{Teams: []Team{{ID: "t1", Players: []Player{a}}, {ID: "t2", Players: []Player{b}}}}
		_, _, winner, ok := m.Singles()
		require.True(t, ok)
		assert.Empty(t, winner)
	})

	t.Run("doubles are not singles", func(t *testing.T) {
		m := Match{Teams: []Team{{ID: "t1", Players: []Player{a, b}}, {ID: "t2", Players: []Player{a, b}}}}
		_, _, _, ok := m.Singles()
		assert.False(t, ok)
	})
}
