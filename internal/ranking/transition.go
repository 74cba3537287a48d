package ranking

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// RunGroupTransition ranks the group and moves its top two members one tier up
// and its bottom two one tier down. Groups that do not have exactly GroupSize
// members are reported, not processed. A failed write aborts the group's
// remaining writes and is returned alongside the partial report.
func (e *Engine) RunGroupTransition(ctx context.Context, group Group, dryRun bool) (*TransitionReport, error) {
	e.ladder.Lock()
	defer e.ladder.Unlock()

	members, err := e.store.GroupMembers(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members of group %s: %w", group.ID, err)
	}
	return e.transition(ctx, e.writer(dryRun), group, members)
}

// transition must be called with the ladder lock held.
func (e *Engine) transition(ctx context.Context, w Writer, group Group, members []Player) (*TransitionReport, error) {
	report := newReport(group)

	if len(members) != GroupSize {
		report.Errors = append(report.Errors, fmt.Sprintf("group %s expects exactly %d members, found %d", group.Name, GroupSize, len(members)))
		report.Message = MessageSkipped
		log.Warn("Skipping group transition", "groupID", group.ID, "members", len(members))
		return report, nil
	}

	above, err := e.store.GroupByLevel(ctx, group.Level-1)
	if err != nil {
		return report, fmt.Errorf("group %s: failed to look up group above: %w", group.ID, err)
	}
	below, err := e.store.GroupByLevel(ctx, group.Level+1)
	if err != nil {
		return report, fmt.Errorf("group %s: failed to look up group below: %w", group.ID, err)
	}

	ranked, err := e.rankMembers(ctx, w, members)
	if err != nil {
		return report, fmt.Errorf("group %s: %w", group.ID, err)
	}

	for _, p := range ranked[:2] {
		if above == nil {
			report.Stayed = append(report.Stayed, StayEntry{PlayerID: p.ID, PlayerName: p.Name, Reason: ReasonTopOfLadder})
			continue
		}
		if err := move(ctx, w, p, group, *above, Promotion); err != nil {
			return report, err
		}
		report.Promoted = append(report.Promoted, movement(p, *above))
	}

	middle := ranked[2]
	report.Stayed = append(report.Stayed, StayEntry{PlayerID: middle.ID, PlayerName: middle.Name, Reason: ReasonMiddleRank})

	for _, p := range ranked[3:] {
		if below == nil {
			report.Stayed = append(report.Stayed, StayEntry{PlayerID: p.ID, PlayerName: p.Name, Reason: ReasonBottomOfLadder})
			continue
		}
		if err := move(ctx, w, p, group, *below, Demotion); err != nil {
			return report, err
		}
		report.Demoted = append(report.Demoted, movement(p, *below))
	}

	report.Message = summary(above != nil, below != nil)
	log.Info("Processed group transition", "groupID", group.ID, "level", group.Level,
		"promoted", len(report.Promoted), "demoted", len(report.Demoted), "stayed", len(report.Stayed))
	return report, nil
}

func move(ctx context.Context, w Writer, p Player, from, to Group, dir Direction) error {
	err := w.MovePlayer(ctx, Move{
		PlayerID:    p.ID,
		FromGroupID: from.ID,
		ToGroupID:   to.ID,
		Direction:   dir,
	})
	if err != nil {
		return fmt.Errorf("group %s: failed to move player %s to group %s: %w", from.ID, p.ID, to.ID, err)
	}
	return nil
}

func movement(p Player, to Group) Movement {
	return Movement{
		PlayerID:      p.ID,
		PlayerName:    p.Name,
		NewGroupID:    to.ID,
		NewGroupName:  to.Name,
		NewGroupLevel: to.Level,
	}
}

func newReport(group Group) *TransitionReport {
	return &TransitionReport{
		GroupID:    group.ID,
		GroupName:  group.Name,
		GroupLevel: group.Level,
		Promoted:   []Movement{},
		Demoted:    []Movement{},
		Stayed:     []StayEntry{},
		Errors:     []string{},
	}
}

func summary(hasAbove, hasBelow bool) string {
	switch {
	case !hasAbove && !hasBelow:
		return MessageIsolated
	case !hasAbove:
		return MessageNoPromotions
	case !hasBelow:
		return MessageNoDemotions
	}
	return MessageProcessed
}
