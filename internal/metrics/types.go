package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesRecorded    prometheus.Counter
	ScoresRecomputed   prometheus.Counter
	GroupsProcessed    prometheus.Counter
	Promotions         prometheus.Counter
	Demotions          prometheus.Counter
	TransitionErrors   prometheus.Counter
	LadderRunDuration  prometheus.Histogram
	MatchesImported    prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
