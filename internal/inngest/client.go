package inngest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	inngesterrors "github.com/inngest/inngestgo/errors"
	"github.com/inngest/inngestgo/step"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// New registers the scheduled ladder run with Inngest.
func New(inngestClient inngestgo.Client, runner TransitionRunner, cron string) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		runner:        runner,
	}
	if _, err := c.createTransitionFunction(cron); err != nil {
		return nil, err
	}
	return c, nil
}

func (i *client) createTransitionFunction(cron string) (inngestgo.ServableFunction, error) {
	config := inngestgo.FunctionOpts{
		ID:      "ladder-transitions",
		Name:    "Run ladder transitions",
		Retries: inngestgo.IntPtr(0),
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.CronTrigger(cron),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			// A ladder run moves players at most once per period, so a failed
			// run is reported and never re-executed.
			return step.Run(ctx, "process-transitions", i.processTransitions)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inngest function: %w", err)
	}
	return f, nil
}

func (i *client) processTransitions(ctx context.Context) (RunSummary, error) {
	reports, err := i.runner.ProcessTransitions(ctx, false)
	if errors.Is(err, ranking.ErrTransitionInProgress) {
		log.Warn("Scheduled ladder run skipped, another run is in progress")
		return RunSummary{Skipped: true}, nil
	}
	if err != nil {
		log.Error("Scheduled ladder run failed, not retrying", "error", err)
		return RunSummary{}, inngesterrors.NoRetryError(err)
	}
	summary := RunSummary{Groups: len(reports)}
	for _, r := range reports {
		summary.Promoted += len(r.Promoted)
		summary.Demoted += len(r.Demoted)
	}
	return summary, nil
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}
