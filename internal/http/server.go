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

func NewServer(store club.ClubStore, dash *dashboard.Service, counters metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Dashboard:      dash,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		PubSub:         pubsub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/dashboard", Chain(s.DashboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/elo", Chain(s.EloHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/elo/history", Chain(s.EloHistoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/skill", Chain(s.SkillHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/partnerships", Chain(s.PartnershipsHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/players/{name}", Chain(s.PlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/counters", Chain(s.CountersHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/matches", Chain(s.AddMatchHandler(), paramsMiddleware))

	s.Router.Handle("GET /export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("POST /import", Chain(s.ImportHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /sync", Chain(s.SyncHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-recorded", Chain(s.MatchRecordedHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
