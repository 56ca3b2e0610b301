package metrics

import "github.com/prometheus/client_golang/prometheus"

// Persistent counter keys.
const (
	KeyMatchesRecorded  = "matches_recorded"
	KeyMatchesImported  = "matches_imported"
	KeyMatchesSynced    = "matches_synced"
	KeySlackResultsSent = "slack_results_sent"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	SyncRuns         prometheus.Counter
	MatchesRecorded  *prometheus.CounterVec
	MatchesRejected  prometheus.Counter
	RatingDuration   prometheus.Histogram
	HistorySize      prometheus.Gauge
	SlackNotifSent   prometheus.Counter
	SlackNotifFailed prometheus.Counter
	StartupSeconds   prometheus.Gauge
}
