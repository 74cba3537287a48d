package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/playtomic"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"golang.org/x/sync/errgroup"
)

// ErrImportNotConfigured is returned when no Playtomic tenant is configured.
var ErrImportNotConfigured = errors.New("playtomic import is not configured")

const fetchConcurrency = 4

// ImportPlaytomicMatches imports the finished singles matches played at the
// club since the given time. Matches already imported are skipped, and so
// are matches whose players cannot both be resolved to members of the same
// group.
func (p *Processor) ImportPlaytomicMatches(ctx context.Context, since time.Time, dryRun bool) (*ImportSummary, error) {
	if p.playtomic == nil || p.tenantID == "" {
		return nil, ErrImportNotConfigured
	}
	log.Info("Fetching matches from Playtomic...", "since", since, "dryRun", dryRun)

	found, err := p.playtomic.GetMatches(ctx, &playtomic.SearchMatchesParams{
		SportID:       playtomic.SportTennis,
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{p.tenantID},
		FromStartDate: since.UTC().Format("2006-01-02T15:04:05"),
	})
	if err != nil {
		return nil, err
	}
	summary := &ImportSummary{Fetched: len(found), Errors: []string{}}

	var pending []string
	seen := make(map[string]bool, len(found))
	for _, m := range found {
		// Search pages can overlap when matches are added while paging.
		if seen[m.MatchID] {
			summary.Skipped++
			continue
		}
		seen[m.MatchID] = true
		exists, err := p.store.HasExternalMatch(ctx, m.MatchID)
		if err != nil {
			return summary, err
		}
		if exists {
			summary.Skipped++
			continue
		}
		pending = append(pending, m.MatchID)
	}

	details := make([]playtomic.Match, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range pending {
		g.Go(func() error {
			m, err := p.playtomic.GetSpecificMatch(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch match %s: %w", id, err)
			}
			details[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	for _, m := range details {
		imported, problem, err := p.importMatch(ctx, m, dryRun)
		if err != nil {
			return summary, err
		}
		if problem != "" {
			summary.Errors = append(summary.Errors, problem)
		}
		if imported {
			summary.Imported++
		} else {
			summary.Skipped++
		}
	}
	if !dryRun {
		p.metrics.IncMatchesImported(summary.Imported)
	}
	log.Info("Playtomic import finished", "fetched", summary.Fetched, "imported", summary.Imported, "skipped", summary.Skipped)
	return summary, nil
}

// importMatch records one Playtomic match. problem describes why a match
// that looked importable was skipped.
func (p *Processor) importMatch(ctx context.Context, m playtomic.Match, dryRun bool) (imported bool, problem string, err error) {
	if !m.Finished() {
		log.Debug("Skipping unfinished match", "matchID", m.MatchID, "gameStatus", m.GameStatus, "resultsStatus", m.ResultsStatus)
		return false, "", nil
	}
	a, b, winner, ok := m.Singles()
	if !ok {
		log.Debug("Skipping match that is not singles", "matchID", m.MatchID)
		return false, "", nil
	}

	sideA, err := p.mapper.Resolve(ctx, a.UserID, a.Name, dryRun)
	if err != nil {
		return false, "", err
	}
	sideB, err := p.mapper.Resolve(ctx, b.UserID, b.Name, dryRun)
	if err != nil {
		return false, "", err
	}
	switch {
	case sideA == nil:
		return false, fmt.Sprintf("match %s: no ladder player matches %q", m.MatchID, a.Name), nil
	case sideB == nil:
		return false, fmt.Sprintf("match %s: no ladder player matches %q", m.MatchID, b.Name), nil
	case sideA.ID == sideB.ID:
		return false, fmt.Sprintf("match %s: both sides resolved to %s", m.MatchID, sideA.Name), nil
	case sideA.GroupID != sideB.GroupID:
		return false, fmt.Sprintf("match %s: %s and %s are in different groups", m.MatchID, sideA.Name, sideB.Name), nil
	}

	match := ranking.Match{
		SideAID:     sideA.ID,
		SideBID:     sideB.ID,
		Status:      ranking.StatusFinished,
		GroupID:     sideA.GroupID,
		CompletedAt: m.End,
		ExternalID:  m.MatchID,
	}
	switch winner {
	case a.UserID:
		match.WinnerID = sideA.ID
	case b.UserID:
		match.WinnerID = sideB.ID
	}
	if _, err := p.record(ctx, match, *sideA, *sideB, dryRun); err != nil {
		return false, "", err
	}
	return true, "", nil
}
