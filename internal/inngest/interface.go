package inngest

import (
	"context"
	"net/http"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

type InngestClient interface {
	Serve() http.Handler
}

// TransitionRunner runs the ladder transitions on schedule.
type TransitionRunner interface {
	ProcessTransitions(ctx context.Context, dryRun bool) ([]*ranking.TransitionReport, error)
}
