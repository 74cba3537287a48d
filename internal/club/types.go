package club

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrDuplicateLevel     = errors.New("a group already exists at that level")
	ErrDuplicateMatch     = errors.New("match already imported")
	ErrPlayerOutsideGroup = errors.New("player is not a member of the match group")
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// HistoryEntry is one group move of a player.
type HistoryEntry struct {
	ID            string            `json:"id"`
	PlayerID      string            `json:"player_id"`
	FromGroupID   string            `json:"from_group_id"`
	FromGroupName string            `json:"from_group_name"`
	ToGroupID     string            `json:"to_group_id"`
	ToGroupName   string            `json:"to_group_name"`
	Direction     ranking.Direction `json:"direction"`
	MovedAt       int64             `json:"moved_at"`
}
