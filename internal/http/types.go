package http

import (
	"net/http"

	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/config"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/notifier"
	"github.com/mauv0809/padel-ratings/internal/processor"
	"github.com/mauv0809/padel-ratings/internal/pubsub"
)

type Server struct {
	Store          club.ClubStore
	Dashboard      *dashboard.Service
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux
}

// maxUploadBytes bounds the size of an uploaded CSV file.
const maxUploadBytes = 10 << 20

// defaultSyncDays is used by /sync when no days parameter is given.
const defaultSyncDays = 1
