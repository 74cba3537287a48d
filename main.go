package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/config"
	"github.com/mauv0809/club-ladder/internal/database"
	server "github.com/mauv0809/club-ladder/internal/http"
	"github.com/mauv0809/club-ladder/internal/inngest"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier/slack"
	"github.com/mauv0809/club-ladder/internal/playtomic"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	playtomicClient := playtomic.NewClient()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsub := pubsub.New(cfg.ProjectID)
	processor := processor.New(clubStore, notifier, metricsSvc, pubsub, playtomicClient, cfg.TenantID)

	var inngestClient inngest.InngestClient
	if cfg.Inngest.Enabled() {
		inngestProvider, err := inngestgo.NewClient(inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
		})
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		inngestClient, err = inngest.New(inngestProvider, processor, cfg.TransitionCron)
		if err != nil {
			log.Fatalf("Failed to register ladder transition function: %s", err)
		}
		log.Info("Scheduled ladder transitions", "cron", cfg.TransitionCron)
	}

	s := server.NewServer(
		clubStore,
		metricsHandler,
		cfg,
		notifier,
		processor,
		pubsub,
		inngestClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
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
