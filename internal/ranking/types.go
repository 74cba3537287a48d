package ranking

import (
	"errors"
	"sync"
)

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusFinished  MatchStatus = "FINISHED"
	StatusCancelled MatchStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Points awarded per finished match.
const (
	PointsForWin         = 3
	PointsForParticipant = 1
)

// GroupSize is the only roster size the transition policy operates on.
const GroupSize = 5

// Stay reasons.
const (
	ReasonTopOfLadder    = "top of the highest group"
	ReasonMiddleRank     = "middle rank"
	ReasonBottomOfLadder = "bottom of the lowest group"
)

// Summary messages of a transition report.
const (
	MessageProcessed    = "transitions processed"
	MessageNoPromotions = "no promotions (top tier)"
	MessageNoDemotions  = "no demotions (bottom tier)"
	MessageIsolated     = "no transitions (isolated tier)"
	MessageSkipped      = "transitions skipped"
)

var (
	ErrSameSides            = errors.New("a match needs two distinct players")
	ErrWinnerNotASide       = errors.New("winner must be one of the match sides")
	ErrInvalidStatus        = errors.New("invalid match status")
	ErrTransitionInProgress = errors.New("a ladder transition run is already in progress")
)

// Player is a snapshot of a ladder member.
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	GroupID       string `json:"group_id"`
	Score         int    `json:"points"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	CreatedAt     int64  `json:"created_at"`
}

// Match is a result (or fixture) between two players in a group.
// WinnerID is empty when no winner has been recorded.
type Match struct {
	ID          string      `json:"id"`
	SideAID     string      `json:"side_a_id"`
	SideBID     string      `json:"side_b_id"`
	WinnerID    string      `json:"winner_id,omitempty"`
	Status      MatchStatus `json:"status"`
	GroupID     string      `json:"group_id"`
	CompletedAt int64       `json:"completed_at,omitempty"`
	ExternalID  string      `json:"external_id,omitempty"`
	CreatedAt   int64       `json:"created_at"`
}

// Involves reports whether the player is one of the two sides.
func (m Match) Involves(playerID string) bool {
	return m.SideAID == playerID || m.SideBID == playerID
}

// Validate checks the match invariants that do not need storage.
func (m Match) Validate() error {
	if m.SideAID == "" || m.SideBID == "" || m.SideAID == m.SideBID {
		return ErrSameSides
	}
	if !m.Status.Valid() {
		return ErrInvalidStatus
	}
	if m.WinnerID != "" && !m.Involves(m.WinnerID) {
		return ErrWinnerNotASide
	}
	return nil
}

// Group is one tier of the ladder. Level 1 is the top tier.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	CreatedAt int64  `json:"created_at"`
}

// Score is the derived point tuple of a player.
type Score struct {
	Points        int `json:"points"`
	MatchesPlayed int `json:"matches_played"`
	MatchesWon    int `json:"matches_won"`
}

// Direction of a group move.
type Direction string

const (
	Promotion Direction = "PROMOTION"
	Demotion  Direction = "DEMOTION"
)

// Move reassigns a player to an adjacent group.
type Move struct {
	PlayerID    string
	FromGroupID string
	ToGroupID   string
	Direction   Direction
}

// Movement is a promoted or demoted entry of a transition report.
type Movement struct {
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	NewGroupID    string `json:"new_group_id"`
	NewGroupName  string `json:"new_group_name"`
	NewGroupLevel int    `json:"new_group_level"`
}

// StayEntry is a player that keeps their group, with the reason.
type StayEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Reason     string `json:"reason"`
}

// TransitionReport summarises one group's transition run.
type TransitionReport struct {
	GroupID    string      `json:"group_id"`
	GroupName  string      `json:"group_name"`
	GroupLevel int         `json:"group_level"`
	Promoted   []Movement  `json:"promoted"`
	Demoted    []Movement  `json:"demoted"`
	Stayed     []StayEntry `json:"stayed"`
	Errors     []string    `json:"errors"`
	Message    string      `json:"message"`
}

// GroupStanding is a group with its members in rank order.
type GroupStanding struct {
	Group   Group    `json:"group"`
	Players []Player `json:"players"`
}

// Engine computes rankings and applies tier transitions.
type Engine struct {
	store Store
	// ladder serialises transition runs across the whole ladder, since
	// adjacent groups exchange players.
	ladder      sync.Mutex
	concurrency int
}
