package club

import (
	"context"
	"fmt"
	"sync"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// The ranking side is served by an in-memory ranking.MockStore; the Func
// hooks override the club side. It is safe for concurrent use.
type MockStore struct {
	*ranking.MockStore

	mu     sync.Mutex
	nextID int
	links  map[string]string // playtomic id -> player id

	AddGroupFunc         func(ctx context.Context, name string, level int) (*ranking.Group, error)
	GetGroupFunc         func(ctx context.Context, groupID string) (*ranking.Group, error)
	AddPlayerFunc        func(ctx context.Context, name, groupID string) (*ranking.Player, error)
	GetPlayerFunc        func(ctx context.Context, playerID string) (*ranking.Player, error)
	ListPlayersFunc      func(ctx context.Context) ([]ranking.Player, error)
	PlayerHistoryFunc    func(ctx context.Context, playerID string) ([]HistoryEntry, error)
	RecordMatchFunc      func(ctx context.Context, match ranking.Match) (*ranking.Match, error)
	HasExternalMatchFunc func(ctx context.Context, externalID string) (bool, error)
	ClearFunc            func(ctx context.Context) error

	// Call records
	RecordMatchCalls []ranking.Match
	LinkCalls        []struct {
		PlayerID    string
		PlaytomicID string
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{
		MockStore: ranking.NewMock(),
		links:     map[string]string{},
	}
}

func (m *MockStore) id(prefix string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *MockStore) AddGroup(ctx context.Context, name string, level int) (*ranking.Group, error) {
	if m.AddGroupFunc != nil {
		return m.AddGroupFunc(ctx, name, level)
	}
	if g, _ := m.GroupByLevel(ctx, level); g != nil {
		return nil, ErrDuplicateLevel
	}
	g := ranking.Group{ID: m.id("group"), Name: name, Level: level}
	m.MockStore.AddGroup(g)
	return &g, nil
}

func (m *MockStore) GetGroup(ctx context.Context, groupID string) (*ranking.Group, error) {
	if m.GetGroupFunc != nil {
		return m.GetGroupFunc(ctx, groupID)
	}
	g, ok := m.Group(groupID)
	if !ok {
		return nil, ErrGroupNotFound
	}
	return &g, nil
}

func (m *MockStore) AddPlayer(ctx context.Context, name, groupID string) (*ranking.Player, error) {
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(ctx, name, groupID)
	}
	if _, ok := m.Group(groupID); !ok {
		return nil, ErrGroupNotFound
	}
	p := ranking.Player{ID: m.id("player"), Name: name, GroupID: groupID}
	m.MockStore.AddPlayer(p)
	return &p, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, playerID string) (*ranking.Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, playerID)
	}
	p, ok := m.Player(playerID)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]ranking.Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	var out []ranking.Player
	groups, _ := m.ListGroups(ctx)
	for _, g := range groups {
		members, _ := m.GroupMembers(ctx, g.ID)
		out = append(out, members...)
	}
	return out, nil
}

func (m *MockStore) PlayerHistory(ctx context.Context, playerID string) ([]HistoryEntry, error) {
	if m.PlayerHistoryFunc != nil {
		return m.PlayerHistoryFunc(ctx, playerID)
	}
	history := []HistoryEntry{}
	for _, move := range m.MovePlayerCalls {
		if move.PlayerID == playerID {
			history = append(history, HistoryEntry{
				PlayerID:    move.PlayerID,
				FromGroupID: move.FromGroupID,
				ToGroupID:   move.ToGroupID,
				Direction:   move.Direction,
			})
		}
	}
	return history, nil
}

func (m *MockStore) RecordMatch(ctx context.Context, match ranking.Match) (*ranking.Match, error) {
	m.mu.Lock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, match)
	m.mu.Unlock()

	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(ctx, match)
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}
	if _, ok := m.Group(match.GroupID); !ok {
		return nil, ErrGroupNotFound
	}
	for _, id := range []string{match.SideAID, match.SideBID} {
		p, ok := m.Player(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		if p.GroupID != match.GroupID {
			return nil, fmt.Errorf("%w: %s", ErrPlayerOutsideGroup, id)
		}
	}
	if match.ExternalID != "" {
		if exists, _ := m.HasExternalMatch(ctx, match.ExternalID); exists {
			return nil, ErrDuplicateMatch
		}
	}
	if match.ID == "" {
		match.ID = m.id("match")
	}
	m.AddMatch(match)
	return &match, nil
}

func (m *MockStore) HasExternalMatch(ctx context.Context, externalID string) (bool, error) {
	if m.HasExternalMatchFunc != nil {
		return m.HasExternalMatchFunc(ctx, externalID)
	}
	for _, match := range m.AllMatches() {
		if match.ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) LinkPlaytomicID(ctx context.Context, playerID, playtomicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LinkCalls = append(m.LinkCalls, struct {
		PlayerID    string
		PlaytomicID string
	}{playerID, playtomicID})
	m.links[playtomicID] = playerID
	return nil
}

func (m *MockStore) GetPlayerByPlaytomicID(ctx context.Context, playtomicID string) (*ranking.Player, error) {
	m.mu.Lock()
	playerID, ok := m.links[playtomicID]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	p, ok := m.Player(playerID)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MockStore) GetUnlinkedPlayers(ctx context.Context) ([]ranking.Player, error) {
	m.mu.Lock()
	linked := map[string]bool{}
	for _, playerID := range m.links {
		linked[playerID] = true
	}
	m.mu.Unlock()

	all, _ := m.ListPlayers(ctx)
	var out []ranking.Player
	for _, p := range all {
		if !linked[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}
