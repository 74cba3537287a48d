package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

const playerColumns = `id, name, group_id, score, matches_played, matches_won, created_at`

const matchColumns = `id, side_a_id, side_b_id, winner_id, status, group_id, completed_at, external_id, created_at`

// AddGroup creates a new tier. Levels are unique across the ladder.
func (s *store) AddGroup(ctx context.Context, name string, level int) (*ranking.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ladder_groups WHERE level = ?", level).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrDuplicateLevel
	}

	g := ranking.Group{
		ID:        uuid.NewString(),
		Name:      name,
		Level:     level,
		CreatedAt: time.Now().UnixNano(),
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO ladder_groups (id, name, level, created_at) VALUES (?, ?, ?, ?)",
		g.ID, g.Name, g.Level, g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}
	log.Debug("Added group", "groupID", g.ID, "name", name, "level", level)
	return &g, nil
}

// GetGroup returns ErrGroupNotFound when the group does not exist.
func (s *store) GetGroup(ctx context.Context, groupID string) (*ranking.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := scanGroup(s.db.QueryRowContext(ctx, "SELECT id, name, level, created_at FROM ladder_groups WHERE id = ?", groupID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	return g, err
}

// GroupByLevel returns nil without error when no group sits at that level.
func (s *store) GroupByLevel(ctx context.Context, level int) (*ranking.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := scanGroup(s.db.QueryRowContext(ctx, "SELECT id, name, level, created_at FROM ladder_groups WHERE level = ?", level))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

func (s *store) ListGroups(ctx context.Context) ([]ranking.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, level, created_at FROM ladder_groups ORDER BY level ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []ranking.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// AddPlayer registers a player in their initial group.
func (s *store) AddPlayer(ctx context.Context, name, groupID string) (*ranking.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}

	p := ranking.Player{
		ID:        uuid.NewString(),
		Name:      name,
		GroupID:   groupID,
		CreatedAt: time.Now().UnixNano(),
	}
	_, err := s.db.ExecContext(ctx, "INSERT INTO players (id, name, group_id, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.GroupID, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	log.Debug("Added player", "playerID", p.ID, "name", name, "groupID", groupID)
	return &p, nil
}

// GetPlayer returns ErrPlayerNotFound when the player does not exist.
func (s *store) GetPlayer(ctx context.Context, playerID string) (*ranking.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := scanPlayer(s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = ?", playerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	return p, err
}

func (s *store) ListPlayers(ctx context.Context) ([]ranking.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers(ctx, "SELECT "+playerColumns+" FROM players ORDER BY name ASC, id ASC")
}

// GroupMembers returns the roster ordered by registration time, then id.
// The ranking relies on this order to break ties.
func (s *store) GroupMembers(ctx context.Context, groupID string) ([]ranking.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers(ctx, "SELECT "+playerColumns+" FROM players WHERE group_id = ? ORDER BY created_at ASC, id ASC", groupID)
}

// SavePlayerScore overwrites the stored score tuple.
func (s *store) SavePlayerScore(ctx context.Context, playerID string, score ranking.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE players SET score = ?, matches_played = ?, matches_won = ? WHERE id = ?",
		score.Points, score.MatchesPlayed, score.MatchesWon, playerID)
	if err != nil {
		return err
	}
	return expectOne(res, ErrPlayerNotFound)
}

// MovePlayer reassigns the player's group and records the move in one
// transaction.
func (s *store) MovePlayer(ctx context.Context, move ranking.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "UPDATE players SET group_id = ? WHERE id = ?", move.ToGroupID, move.PlayerID)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := expectOne(res, ErrPlayerNotFound); err != nil {
		tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO group_history (id, player_id, from_group_id, to_group_id, direction, moved_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), move.PlayerID, move.FromGroupID, move.ToGroupID, move.Direction, time.Now().UnixNano())
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// PlayerHistory lists the player's group moves, oldest first.
func (s *store) PlayerHistory(ctx context.Context, playerID string) ([]HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT h.id, h.player_id, h.from_group_id, COALESCE(f.name, ''), h.to_group_id, COALESCE(t.name, ''), h.direction, h.moved_at
		FROM group_history h
		LEFT JOIN ladder_groups f ON f.id = h.from_group_id
		LEFT JOIN ladder_groups t ON t.id = h.to_group_id
		WHERE h.player_id = ?
		ORDER BY h.moved_at ASC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []HistoryEntry{}
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.ID, &h.PlayerID, &h.FromGroupID, &h.FromGroupName, &h.ToGroupID, &h.ToGroupName, &h.Direction, &h.MovedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// RecordMatch validates and stores a match. Both sides must belong to the
// match group. A finished match without a completion time is stamped now.
func (s *store) RecordMatch(ctx context.Context, match ranking.Match) (*ranking.Match, error) {
	if err := match.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGroup(ctx, match.GroupID); err != nil {
		return nil, err
	}
	for _, id := range []string{match.SideAID, match.SideBID} {
		var groupID string
		err := s.db.QueryRowContext(ctx, "SELECT group_id FROM players WHERE id = ?", id).Scan(&groupID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		if err != nil {
			return nil, err
		}
		if groupID != match.GroupID {
			return nil, fmt.Errorf("%w: %s", ErrPlayerOutsideGroup, id)
		}
	}
	if match.ExternalID != "" {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches WHERE external_id = ?", match.ExternalID).Scan(&n); err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrDuplicateMatch
		}
	}

	now := time.Now()
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	match.CreatedAt = now.UnixNano()
	if match.Status == ranking.StatusFinished && match.CompletedAt == 0 {
		match.CompletedAt = now.Unix()
	}

	_, err := s.db.ExecContext(ctx, "INSERT INTO matches ("+matchColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		match.ID, match.SideAID, match.SideBID, nullString(match.WinnerID), match.Status, match.GroupID,
		nullInt(match.CompletedAt), nullString(match.ExternalID), match.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	log.Debug("Recorded match", "matchID", match.ID, "groupID", match.GroupID, "status", match.Status)
	return &match, nil
}

// MatchesInvolving returns every match where the player is either side,
// regardless of status or group.
func (s *store) MatchesInvolving(ctx context.Context, playerID string) ([]ranking.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches WHERE side_a_id = ?
		UNION
		SELECT `+matchColumns+` FROM matches WHERE side_b_id = ?
		ORDER BY created_at ASC`, playerID, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []ranking.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (s *store) HasExternalMatch(ctx context.Context, externalID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches WHERE external_id = ?", externalID).Scan(&n)
	return n > 0, err
}

// LinkPlaytomicID ties a ladder player to their Playtomic account.
func (s *store) LinkPlaytomicID(ctx context.Context, playerID, playtomicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE players SET playtomic_id = ? WHERE id = ?", playtomicID, playerID)
	if err != nil {
		return err
	}
	return expectOne(res, ErrPlayerNotFound)
}

// GetPlayerByPlaytomicID returns nil without error when no player is linked.
func (s *store) GetPlayerByPlaytomicID(ctx context.Context, playtomicID string) (*ranking.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := scanPlayer(s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE playtomic_id = ?", playtomicID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *store) GetUnlinkedPlayers(ctx context.Context) ([]ranking.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers(ctx, "SELECT "+playerColumns+" FROM players WHERE playtomic_id IS NULL ORDER BY name ASC")
}

// Clear removes all data from the database.
func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"group_history", "matches", "players", "ladder_groups"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Info("Cleared club store")
	return nil
}

func (s *store) requireGroup(ctx context.Context, groupID string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ladder_groups WHERE id = ?", groupID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (s *store) queryPlayers(ctx context.Context, query string, args ...any) ([]ranking.Player, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []ranking.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

type scanner interface{ Scan(...any) error }

func scanGroup(row scanner) (*ranking.Group, error) {
	var g ranking.Group
	if err := row.Scan(&g.ID, &g.Name, &g.Level, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanPlayer(row scanner) (*ranking.Player, error) {
	var p ranking.Player
	if err := row.Scan(&p.ID, &p.Name, &p.GroupID, &p.Score, &p.MatchesPlayed, &p.MatchesWon, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanMatch(row scanner) (*ranking.Match, error) {
	var m ranking.Match
	var winnerID, externalID sql.NullString
	var completedAt sql.NullInt64
	if err := row.Scan(&m.ID, &m.SideAID, &m.SideBID, &winnerID, &m.Status, &m.GroupID, &completedAt, &externalID, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.WinnerID = winnerID.String
	m.ExternalID = externalID.String
	m.CompletedAt = completedAt.Int64
	return &m, nil
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
