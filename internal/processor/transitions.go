package processor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// ProcessTransitions runs the tier transitions of the whole ladder, then
// announces the result. Reports completed before a failure are returned
// together with the error.
func (p *Processor) ProcessTransitions(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error) {
	log.Info("Starting ladder transitions...", "dryRun", dryRun)
	start := time.Now()
	reports, err := p.engine.RunLadderTransitions(ctx, dryRun)
	if errors.Is(err, ranking.ErrTransitionInProgress) {
		log.Warn("Ladder transitions already running, skipping")
		return nil, err
	}
	p.metrics.ObserveLadderRunDuration(time.Since(start).Seconds())
	p.recordTransitionMetrics(reports, dryRun)
	if err != nil {
		p.metrics.IncTransitionErrors()
		log.Error("Ladder transitions stopped", "error", err, "groupsDone", len(reports))
		return reports, err
	}

	p.announce(reports, dryRun)
	log.Info("Ladder transitions finished.", "groups", len(reports), "duration", time.Since(start))
	return reports, nil
}

// ProcessGroupTransition runs the tier transition of a single group.
func (p *Processor) ProcessGroupTransition(ctx context.Context, groupID string, dryRun bool) (*ranking.TransitionReport, error) {
	group, err := p.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	report, err := p.engine.RunGroupTransition(ctx, *group, dryRun)
	p.recordTransitionMetrics([]*ranking.TransitionReport{report}, dryRun)
	if err != nil {
		p.metrics.IncTransitionErrors()
		log.Error("Group transition stopped", "error", err, "groupID", groupID)
		return report, err
	}
	p.announce([]*ranking.TransitionReport{report}, dryRun)
	return report, nil
}

func (p *Processor) recordTransitionMetrics(reports []*ranking.TransitionReport, dryRun bool) {
	for _, r := range reports {
		if r == nil {
			continue
		}
		p.metrics.IncGroupsProcessed()
		if len(r.Errors) > 0 {
			p.metrics.IncTransitionErrors()
		}
		if dryRun {
			continue
		}
		p.metrics.AddPromotions(len(r.Promoted))
		p.metrics.AddDemotions(len(r.Demoted))
	}
}

func (p *Processor) announce(reports []*ranking.TransitionReport, dryRun bool) {
	if err := p.notifier.SendTransitionSummary(reports, dryRun); err != nil {
		log.Error("Failed to send transition summary", "error", err)
	}

	event := pubsub.TransitionsProcessedEvent{
		Groups:   len(reports),
		Promoted: []string{},
		Demoted:  []string{},
		Errors:   []string{},
		DryRun:   dryRun,
	}
	for _, r := range reports {
		for _, m := range r.Promoted {
			event.Promoted = append(event.Promoted, m.PlayerID)
		}
		for _, m := range r.Demoted {
			event.Demoted = append(event.Demoted, m.PlayerID)
		}
		event.Errors = append(event.Errors, r.Errors...)
	}
	if err := p.pubsub.SendMessage(pubsub.EventTransitionsProcessed, event); err != nil {
		log.Error("Failed to publish transitions processed event", "error", err)
	}
}
