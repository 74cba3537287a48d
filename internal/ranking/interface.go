package ranking

import "context"

// Reader is the read side the engine needs from storage.
type Reader interface {
	// MatchesInvolving returns every match (any status, any group) where the
	// player is either side.
	MatchesInvolving(ctx context.Context, playerID string) ([]Match, error)
	// GroupByLevel returns the group at exactly that level, or nil when the
	// ladder has no such tier.
	GroupByLevel(ctx context.Context, level int) (*Group, error)
	// GroupMembers returns the roster in a stable order.
	GroupMembers(ctx context.Context, groupID string) ([]Player, error)
	// ListGroups returns all groups ordered by ascending level.
	ListGroups(ctx context.Context) ([]Group, error)
}

// Writer persists the engine's results. Both operations overwrite.
type Writer interface {
	SavePlayerScore(ctx context.Context, playerID string, score Score) error
	MovePlayer(ctx context.Context, move Move) error
}

// Store is everything the engine needs from storage.
type Store interface {
	Reader
	Writer
}
