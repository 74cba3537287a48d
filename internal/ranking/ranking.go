package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// RankPlayers orders players by descending score. Equal scores keep their
// input order, so the result is deterministic for a given roster order.
func RankPlayers(players []Player) []Player {
	ranked := make([]Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BuildGroupRanking recomputes and persists the score of every member of the
// group and returns the members in rank order (index 0 is the leader).
func (e *Engine) BuildGroupRanking(ctx context.Context, group Group, dryRun bool) ([]Player, error) {
	members, err := e.store.GroupMembers(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members of group %s: %w", group.ID, err)
	}
	return e.rankMembers(ctx, e.writer(dryRun), members)
}

// rankMembers recomputes members concurrently and sorts once all are done.
func (e *Engine) rankMembers(ctx context.Context, w Writer, members []Player) ([]Player, error) {
	updated := make([]Player, len(members))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, member := range members {
		g.Go(func() error {
			p, err := e.recompute(gCtx, w, member)
			if err != nil {
				return err
			}
			updated[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := RankPlayers(updated)
	log.Debug("Built group ranking", "members", len(ranked))
	return ranked, nil
}
