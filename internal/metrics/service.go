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
		SyncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_playtomic_sync_runs_total",
			Help: "The total number of Playtomic sync runs.",
		}),
		MatchesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_matches_recorded_total",
			Help: "The total number of matches added to the history, by source.",
		}, []string{"source"}),
		MatchesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_rejected_total",
			Help: "The total number of match submissions rejected as invalid.",
		}),
		RatingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_rating_computation_duration_seconds",
			Help:    "The duration of a full ratings recomputation over the history.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_match_history_size",
			Help: "The number of matches in the history at the last recomputation.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncRuns,
		s.MatchesRecorded,
		s.MatchesRejected,
		s.RatingDuration,
		s.HistorySize,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupSeconds,
	)

	return s
}

func (s *Service) IncSyncRuns() {
	s.SyncRuns.Inc()
}

func (s *Service) IncMatchesRecorded(source string) {
	s.MatchesRecorded.WithLabelValues(source).Inc()
}

func (s *Service) IncMatchesRejected() {
	s.MatchesRejected.Inc()
}

func (s *Service) ObserveRatingDuration(duration float64) {
	s.RatingDuration.Observe(duration)
}

func (s *Service) SetHistorySize(matches int) {
	s.HistorySize.Set(float64(matches))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupSeconds.Set(duration)
}
