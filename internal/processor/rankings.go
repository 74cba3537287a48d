package processor

import (
	"context"
	"strconv"
	"strings"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// GroupRanking recomputes the group's scores and returns its standing.
func (p *Processor) GroupRanking(ctx context.Context, groupID string, dryRun bool) (*ranking.GroupStanding, error) {
	group, err := p.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return p.standing(ctx, *group, dryRun)
}

// Ladder returns the standing of every group, top tier first.
func (p *Processor) Ladder(ctx context.Context, dryRun bool) ([]ranking.GroupStanding, error) {
	groups, err := p.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	standings := make([]ranking.GroupStanding, 0, len(groups))
	for _, g := range groups {
		s, err := p.standing(ctx, g, dryRun)
		if err != nil {
			return nil, err
		}
		standings = append(standings, *s)
	}
	return standings, nil
}

func (p *Processor) standing(ctx context.Context, group ranking.Group, dryRun bool) (*ranking.GroupStanding, error) {
	players, err := p.engine.BuildGroupRanking(ctx, group, dryRun)
	if err != nil {
		return nil, err
	}
	if !dryRun {
		p.metrics.IncScoresRecomputed(len(players))
	}
	if players == nil {
		players = []ranking.Player{}
	}
	return &ranking.GroupStanding{Group: group, Players: players}, nil
}

// FindGroup looks a group up by id, case-insensitive name or level.
func (p *Processor) FindGroup(ctx context.Context, query string) (*ranking.Group, error) {
	query = strings.TrimSpace(query)
	groups, err := p.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	level, levelErr := strconv.Atoi(query)
	for _, g := range groups {
		if g.ID == query || strings.EqualFold(g.Name, query) || (levelErr == nil && g.Level == level) {
			return &g, nil
		}
	}
	return nil, club.ErrGroupNotFound
}
