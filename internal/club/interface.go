package club

import (
	"context"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// ClubStore defines the interface for interacting with the club's data.
// It is the storage the ranking engine runs against.
type ClubStore interface {
	ranking.Store

	AddGroup(ctx context.Context, name string, level int) (*ranking.Group, error)
	GetGroup(ctx context.Context, groupID string) (*ranking.Group, error)

	AddPlayer(ctx context.Context, name, groupID string) (*ranking.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*ranking.Player, error)
	ListPlayers(ctx context.Context) ([]ranking.Player, error)
	PlayerHistory(ctx context.Context, playerID string) ([]HistoryEntry, error)

	RecordMatch(ctx context.Context, match ranking.Match) (*ranking.Match, error)
	HasExternalMatch(ctx context.Context, externalID string) (bool, error)

	LinkPlaytomicID(ctx context.Context, playerID, playtomicID string) error
	GetPlayerByPlaytomicID(ctx context.Context, playtomicID string) (*ranking.Player, error)
	GetUnlinkedPlayers(ctx context.Context) ([]ranking.Player, error)

	Clear(ctx context.Context) error
}
