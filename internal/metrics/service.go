package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_matches_recorded_total",
			Help: "The total number of match results recorded.",
		}),
		ScoresRecomputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_scores_recomputed_total",
			Help: "The total number of player scores recomputed.",
		}),
		GroupsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_groups_processed_total",
			Help: "The total number of group transitions run.",
		}),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_promotions_total",
			Help: "The total number of players promoted.",
		}),
		Demotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_demotions_total",
			Help: "The total number of players demoted.",
		}),
		TransitionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_transition_errors_total",
			Help: "The total number of groups reported with transition errors.",
		}),
		LadderRunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ladder_run_duration_seconds",
			Help:    "The duration of full ladder transition runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MatchesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_matches_imported_total",
			Help: "The total number of matches imported from Playtomic.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ladder_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.ScoresRecomputed,
		s.GroupsProcessed,
		s.Promotions,
		s.Demotions,
		s.TransitionErrors,
		s.LadderRunDuration,
		s.MatchesImported,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncScoresRecomputed(n int) {
	s.ScoresRecomputed.Add(float64(n))
}

func (s *Service) IncGroupsProcessed() {
	s.GroupsProcessed.Inc()
}

func (s *Service) AddPromotions(n int) {
	s.Promotions.Add(float64(n))
}

func (s *Service) AddDemotions(n int) {
	s.Demotions.Add(float64(n))
}

func (s *Service) IncTransitionErrors() {
	s.TransitionErrors.Inc()
}

func (s *Service) ObserveLadderRunDuration(duration float64) {
	s.LadderRunDuration.Observe(duration)
}

func (s *Service) IncMatchesImported(n int) {
	s.MatchesImported.Add(float64(n))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
