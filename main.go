package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/config"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/database"
	server "github.com/mauv0809/padel-ratings/internal/http"
	"github.com/mauv0809/padel-ratings/internal/metrics"
	"github.com/mauv0809/padel-ratings/internal/notifier"
	"github.com/mauv0809/padel-ratings/internal/notifier/slack"
	"github.com/mauv0809/padel-ratings/internal/playtomic"
	"github.com/mauv0809/padel-ratings/internal/processor"
	"github.com/mauv0809/padel-ratings/internal/pubsub"
	"github.com/mauv0809/padel-ratings/internal/rating"
)

func main() {
	startTime := time.Now()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	setupLogging(cfg)

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())

	clubStore := club.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.New(db)

	elo := rating.NewEloEngine(cfg.Elo.Initial, cfg.Elo.KFactor)
	skill := rating.NewSkillEngine(nil)
	if cfg.Skill.Enabled {
		skill = rating.NewSkillEngine(rating.NewTrueSkill(
			rating.WithPrior(cfg.Skill.Mu, cfg.Skill.Sigma),
			rating.WithBeta(cfg.Skill.Beta),
			rating.WithTau(cfg.Skill.Tau),
		))
	}
	opts := dashboard.DefaultOptions()
	opts.RecentLimit = cfg.RecentLimit
	dash := dashboard.NewService(clubStore, elo, skill, metricsSvc, opts)

	var notif notifier.Notifier = notifier.Noop{}
	if cfg.SlackEnabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack not configured, result notifications are disabled")
	}

	var playtomicClient playtomic.PlaytomicClient
	if cfg.TenantID != "" {
		playtomicClient = playtomic.NewClient(cfg.Playtomic.Timeout, cfg.Playtomic.Retries)
	}

	ctx := context.Background()
	ps, local, err := newPubSub(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	defer ps.Close()

	proc := processor.New(clubStore, dash, notif, metricsSvc, counters, ps, playtomicClient, cfg.TenantID)
	if local != nil {
		local.Subscribe(pubsub.EventMatchRecorded, func(ctx context.Context, data []byte) error {
			var event pubsub.MatchRecorded
			if err := local.ProcessMessage(data, &event); err != nil {
				return err
			}
			return proc.HandleMatchRecorded(ctx, event, false)
		})
	}

	s := server.NewServer(clubStore, dash, counters, metricsHandler, cfg, notif, proc, ps)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

func setupLogging(cfg config.Config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(log.JSONFormatter)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// newPubSub connects to Google Cloud Pub/Sub when a project is configured.
// Without one, events are delivered in process and the returned Local is
// non-nil so subscribers can be attached.
func newPubSub(ctx context.Context, projectID string) (pubsub.PubSubClient, *pubsub.Local, error) {
	if projectID == "" {
		log.Info("No GCP project configured, delivering events in process")
		local := pubsub.NewLocal()
		return local, local, nil
	}
	client, err := pubsub.New(ctx, projectID)
	return client, nil, err
}
