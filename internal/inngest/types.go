package inngest

import (
	"github.com/inngest/inngestgo"
)

type client struct {
	inngestClient inngestgo.Client
	runner        TransitionRunner
}

// RunSummary is the result of a scheduled ladder run.
type RunSummary struct {
	Groups   int  `json:"groups"`
	Promoted int  `json:"promoted"`
	Demoted  int  `json:"demoted"`
	Skipped  bool `json:"skipped"`
}
