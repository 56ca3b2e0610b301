package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSyncRuns()
	IncMatchesRecorded(source string)
	IncMatchesRejected()
	ObserveRatingDuration(duration float64)
	SetHistorySize(matches int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps named counters in the database so they survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
