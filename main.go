package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebook/internal/config"
	"recipebook/internal/database"
	"recipebook/internal/logger"
	"recipebook/internal/server"
	"recipebook/internal/services"
	"recipebook/internal/session"
	"recipebook/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger("server", "info").Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.NewLogger("server", cfg.LogLevel)
	if cfg.IsDevelopment() && os.Getenv("SESSION_SECRET") == "" {
		log.Warn().Msg("SESSION_SECRET not set, using the development secret")
	}

	// --- Database ---
	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}
	defer database.Close(db)

	// --- Domain events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient
		startAuditConsumer(mqClient, log.WithField("component", "events"))
	} else {
		log.Info().Msg("RABBITMQ_URL not set, domain events disabled")
	}

	// --- HTTP app ---
	sessions := session.NewManager(session.Options{
		Secret:     cfg.SessionSecret,
		CookieName: cfg.SessionCookieName,
		MaxAge:     cfg.SessionMaxAge,
		Secure:     cfg.SessionCookieSecure,
	})
	app := server.NewApp(server.Deps{
		DB:        db,
		Sessions:  sessions,
		Events:    events,
		Log:       log,
		AccessLog: true,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.AppPort).Str("driver", cfg.DBDriver).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// startAuditConsumer logs every domain event that reaches the queue.
func startAuditConsumer(client *rabbitmq.Client, log *logger.Logger) {
	err := client.ConsumeEvents(
		func(ev rabbitmq.Event) error {
			log.Info().
				Str("event", ev.Type).
				Time("occurred_at", ev.OccurredAt).
				RawJSON("data", ev.Data).
				Msg("domain event")
			return nil
		},
		func(tag uint64, err error) {
			log.Error().Err(err).Uint64("delivery_tag", tag).Msg("failed to process event")
		},
	)
	if err != nil {
		log.Error().Err(err).Str("queue", client.Queue()).Msg("failed to start event consumer")
		return
	}
	log.Info().Str("queue", client.Queue()).Msg("waiting for domain events")
}
