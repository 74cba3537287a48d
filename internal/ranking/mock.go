package ranking

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store for tests. Players, groups and matches can
// be seeded directly; the Func hooks override the default behaviour.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Players []Player
	Groups  []Group
	Matches []Match

	MatchesInvolvingFunc func(ctx context.Context, playerID string) ([]Match, error)
	GroupByLevelFunc     func(ctx context.Context, level int) (*Group, error)
	GroupMembersFunc     func(ctx context.Context, groupID string) ([]Player, error)
	ListGroupsFunc       func(ctx context.Context) ([]Group, error)
	SavePlayerScoreFunc  func(ctx context.Context, playerID string, score Score) error
	MovePlayerFunc       func(ctx context.Context, move Move) error

	// Call records
	SavePlayerScoreCalls []struct {
		PlayerID string
		Score    Score
	}
	MovePlayerCalls []Move
}

// NewMock creates an empty mock store.
func NewMock() *MockStore {
	return &MockStore{}
}

// AddGroup stores a group.
func (m *MockStore) AddGroup(g Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Groups = append(m.Groups, g)
}

// AddPlayer stores a player.
func (m *MockStore) AddPlayer(p Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Players = append(m.Players, p)
}

// AddMatch stores a match.
func (m *MockStore) AddMatch(match Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Matches = append(m.Matches, match)
}

// AllMatches returns a copy of the stored matches.
func (m *MockStore) AllMatches() []Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Match, len(m.Matches))
	copy(out, m.Matches)
	return out
}

// Group returns the stored group.
func (m *MockStore) Group(id string) (Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Player returns the stored snapshot of a player.
func (m *MockStore) Player(id string) (Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (m *MockStore) MatchesInvolving(ctx context.Context, playerID string) ([]Match, error) {
	if m.MatchesInvolvingFunc != nil {
		return m.MatchesInvolvingFunc(ctx, playerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Match
	for _, match := range m.Matches {
		if match.Involves(playerID) {
			out = append(out, match)
		}
	}
	return out, nil
}

func (m *MockStore) GroupByLevel(ctx context.Context, level int) (*Group, error) {
	if m.GroupByLevelFunc != nil {
		return m.GroupByLevelFunc(ctx, level)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.Groups {
		if g.Level == level {
			found := g
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockStore) GroupMembers(ctx context.Context, groupID string) ([]Player, error) {
	if m.GroupMembersFunc != nil {
		return m.GroupMembersFunc(ctx, groupID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Player
	for _, p := range m.Players {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockStore) ListGroups(ctx context.Context) ([]Group, error) {
	if m.ListGroupsFunc != nil {
		return m.ListGroupsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Group, len(m.Groups))
	copy(out, m.Groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

func (m *MockStore) SavePlayerScore(ctx context.Context, playerID string, score Score) error {
	m.mu.Lock()
	m.SavePlayerScoreCalls = append(m.SavePlayerScoreCalls, struct {
		PlayerID string
		Score    Score
	}{playerID, score})
	m.mu.Unlock()

	if m.SavePlayerScoreFunc != nil {
		return m.SavePlayerScoreFunc(ctx, playerID, score)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Players {
		if m.Players[i].ID == playerID {
			m.Players[i].Score = score.Points
			m.Players[i].MatchesPlayed = score.MatchesPlayed
			m.Players[i].MatchesWon = score.MatchesWon
		}
	}
	return nil
}

func (m *MockStore) MovePlayer(ctx context.Context, move Move) error {
	m.mu.Lock()
	m.MovePlayerCalls = append(m.MovePlayerCalls, move)
	m.mu.Unlock()

	if m.MovePlayerFunc != nil {
		return m.MovePlayerFunc(ctx, move)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Players {
		if m.Players[i].ID == move.PlayerID {
			m.Players[i].GroupID = move.ToGroupID
		}
	}
	return nil
}
