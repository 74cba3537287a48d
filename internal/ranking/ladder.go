package ranking

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// RunLadderTransitions runs the transition policy for every group, top tier
// first. All rosters are read before the first write, so a player moved into
// a later group is not ranked again in the same run. Off-size groups are
// reported per group; a storage failure stops the run and is returned with
// the reports produced so far, including the partial report of the failing
// group.
//
// Returns ErrTransitionInProgress if another transition run holds the ladder.
func (e *Engine) RunLadderTransitions(ctx context.Context, dryRun bool) ([]*TransitionReport, error) {
	if !e.ladder.TryLock() {
		return nil, ErrTransitionInProgress
	}
	defer e.ladder.Unlock()

	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	rosters := make([][]Player, len(groups))
	for i, g := range groups {
		rosters[i], err = e.store.GroupMembers(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load members of group %s: %w", g.ID, err)
		}
	}

	w := e.writer(dryRun)
	reports := make([]*TransitionReport, 0, len(groups))
	for i, g := range groups {
		report, err := e.transition(ctx, w, g, rosters[i])
		if err != nil {
			// Moves written before the failure stay in the report.
			if report != nil {
				reports = append(reports, report)
			}
			log.Error("Ladder transition run aborted", "groupID", g.ID, "error", err)
			return reports, err
		}
		reports = append(reports, report)
	}

	log.Info("Processed ladder transitions", "groups", len(reports), "dryRun", dryRun)
	return reports, nil
}
