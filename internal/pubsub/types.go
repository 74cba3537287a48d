package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// noopClient is used when no GCP project is configured.
type noopClient struct{}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventMatchRecorded        EventType = "match-recorded"
	EventTransitionsProcessed EventType = "transitions-processed"
	EventRunTransitions       EventType = "run-transitions"
)

// MatchRecordedEvent is published after a result has been stored.
type MatchRecordedEvent struct {
	MatchID  string `msgpack:"match_id"`
	GroupID  string `msgpack:"group_id"`
	SideAID  string `msgpack:"side_a_id"`
	SideBID  string `msgpack:"side_b_id"`
	WinnerID string `msgpack:"winner_id"`
}

// TransitionsProcessedEvent summarises a ladder run.
type TransitionsProcessedEvent struct {
	Groups   int      `msgpack:"groups"`
	Promoted []string `msgpack:"promoted"`
	Demoted  []string `msgpack:"demoted"`
	Errors   []string `msgpack:"errors"`
	DryRun   bool     `msgpack:"dry_run"`
}

// RunTransitionsRequest asks the service to run the ladder transitions.
type RunTransitionsRequest struct {
	DryRun bool `msgpack:"dry_run"`
}
