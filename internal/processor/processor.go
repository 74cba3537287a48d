package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/playtomic"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// New creates a new Processor. playtomicClient may be nil, in which case
// imports are unavailable.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, playtomicClient playtomic.PlaytomicClient, tenantID string) *Processor {
	return &Processor{
		store:     store,
		engine:    ranking.New(store),
		mapper:    club.NewPlayerMapper(store),
		playtomic: playtomicClient,
		tenantID:  tenantID,
		pubsub:    pubsub,
		notifier:  notifier,
		metrics:   metrics,
	}
}

// RecordMatchResult validates and stores a result, then recomputes the score
// of both players. Invalid input is reported as a *ValidationError. In a dry
// run nothing is stored and the returned scores are the projected ones.
func (p *Processor) RecordMatchResult(ctx context.Context, in RecordMatchInput, dryRun bool) (*RecordMatchOutput, error) {
	if in.Status == "" {
		in.Status = ranking.StatusFinished
	}
	sideA, sideB, err := p.validateMatch(ctx, in)
	if err != nil {
		return nil, err
	}
	match := ranking.Match{
		SideAID:  in.SideAID,
		SideBID:  in.SideBID,
		WinnerID: in.WinnerID,
		Status:   in.Status,
		GroupID:  in.GroupID,
	}
	return p.record(ctx, match, *sideA, *sideB, dryRun)
}

func (p *Processor) validateMatch(ctx context.Context, in RecordMatchInput) (*ranking.Player, *ranking.Player, error) {
	verr := &ValidationError{}
	if in.SideAID == "" {
		verr.add("player1_id", "The player1 id field is required.")
	}
	if in.SideBID == "" {
		verr.add("player2_id", "The player2 id field is required.")
	}
	if in.GroupID == "" {
		verr.add("group_id", "The group id field is required.")
	}
	if in.SideAID != "" && in.SideAID == in.SideBID {
		verr.add("player2_id", "The player2 id and player1 id must be different.")
	}
	if in.WinnerID != "" && in.WinnerID != in.SideAID && in.WinnerID != in.SideBID {
		verr.add("winner_id", "The selected winner id is invalid.")
	}
	if !in.Status.Valid() {
		verr.add("status", "The selected status is invalid.")
	}
	if !verr.empty() {
		return nil, nil, verr
	}

	if _, err := p.store.GetGroup(ctx, in.GroupID); err != nil {
		if !errors.Is(err, club.ErrGroupNotFound) {
			return nil, nil, err
		}
		verr.add("group_id", "The selected group id is invalid.")
	}
	lookup := func(field, id string) (*ranking.Player, error) {
		player, err := p.store.GetPlayer(ctx, id)
		if errors.Is(err, club.ErrPlayerNotFound) {
			verr.add(field, fmt.Sprintf("The selected %s is invalid.", humanize(field)))
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if player.GroupID != in.GroupID {
			verr.add(field, fmt.Sprintf("The %s must be a member of the group.", humanize(field)))
		}
		return player, nil
	}
	sideA, err := lookup("player1_id", in.SideAID)
	if err != nil {
		return nil, nil, err
	}
	sideB, err := lookup("player2_id", in.SideBID)
	if err != nil {
		return nil, nil, err
	}
	if !verr.empty() {
		return nil, nil, verr
	}
	return sideA, sideB, nil
}

func humanize(field string) string {
	switch field {
	case "player1_id":
		return "player1 id"
	case "player2_id":
		return "player2 id"
	}
	return field
}

// record stores a validated match and refreshes both players.
func (p *Processor) record(ctx context.Context, match ranking.Match, sideA, sideB ranking.Player, dryRun bool) (*RecordMatchOutput, error) {
	if dryRun {
		log.Info("[Dry Run] Would record match", "sideA", sideA.Name, "sideB", sideB.Name, "winnerID", match.WinnerID, "groupID", match.GroupID)
		a, err := p.project(ctx, sideA, match)
		if err != nil {
			return nil, err
		}
		b, err := p.project(ctx, sideB, match)
		if err != nil {
			return nil, err
		}
		if err := p.notifier.SendMatchResult(match, a, b, true); err != nil {
			log.Error("Failed to send match result notification", "error", err)
		}
		return &RecordMatchOutput{Match: match, SideA: a, SideB: b}, nil
	}

	stored, err := p.store.RecordMatch(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	p.metrics.IncMatchesRecorded()
	log.Info("Recorded match", "matchID", stored.ID, "sideA", sideA.Name, "sideB", sideB.Name, "winnerID", stored.WinnerID, "status", stored.Status)

	a, err := p.engine.RecomputePlayer(ctx, sideA, false)
	if err != nil {
		return nil, err
	}
	b, err := p.engine.RecomputePlayer(ctx, sideB, false)
	if err != nil {
		return nil, err
	}
	p.metrics.IncScoresRecomputed(2)

	if err := p.pubsub.SendMessage(pubsub.EventMatchRecorded, pubsub.MatchRecordedEvent{
		MatchID:  stored.ID,
		GroupID:  stored.GroupID,
		SideAID:  stored.SideAID,
		SideBID:  stored.SideBID,
		WinnerID: stored.WinnerID,
	}); err != nil {
		log.Error("Failed to publish match recorded event", "error", err, "matchID", stored.ID)
	}
	if stored.Status == ranking.StatusFinished {
		if err := p.notifier.SendMatchResult(*stored, a, b, false); err != nil {
			log.Error("Failed to send match result notification", "error", err, "matchID", stored.ID)
		}
	}
	return &RecordMatchOutput{Match: *stored, SideA: a, SideB: b}, nil
}

// project computes the score the player would have with the extra match.
func (p *Processor) project(ctx context.Context, player ranking.Player, extra ranking.Match) (ranking.Player, error) {
	matches, err := p.store.MatchesInvolving(ctx, player.ID)
	if err != nil {
		return player, fmt.Errorf("failed to load matches for player %s: %w", player.ID, err)
	}
	score := ranking.ComputePlayerScore(player.ID, append(matches, extra))
	player.Score = score.Points
	player.MatchesPlayed = score.MatchesPlayed
	player.MatchesWon = score.MatchesWon
	return player, nil
}
