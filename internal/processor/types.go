package processor

import (
	"errors"
	"time"

	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/playtomic"
	"github.com/mauv0809/padel-ratings/internal/pubsub"
)

// NotifyWindow is how recently a synced match must have ended to be announced.
const NotifyWindow = 24 * time.Hour

var (
	ErrSyncDisabled = errors.New("playtomic sync is not configured")
	ErrInvalidDays  = errors.New("days must be positive")
)

// Processor handles the business logic of adding matches to the history.
type Processor struct {
	store     Store
	board     Board
	pubsub    pubsub.PubSubClient
	notifier  Notifier
	metrics   metrics.Metrics
	counters  metrics.MetricsStore
	playtomic playtomic.PlaytomicClient
	tenantID  string
	now       func() time.Time
}

// Recorded is the outcome of recording one match. Warnings maps each new
// player name to the existing players it resembles.
type Recorded struct {
	Match    match.Record                  `json:"match"`
	Warnings map[string][]club.Suggestion `json:"warnings,omitempty"`
	DryRun   bool                          `json:"dry_run,omitempty"`
}

// SyncResult summarises one Playtomic sync run.
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Known    int `json:"known"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"`
	Added    int `json:"added"`
}
