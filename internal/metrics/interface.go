package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncScoresRecomputed(n int)
	IncGroupsProcessed()
	AddPromotions(n int)
	AddDemotions(n int)
	IncTransitionErrors()
	ObserveLadderRunDuration(duration float64)
	IncMatchesImported(n int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
