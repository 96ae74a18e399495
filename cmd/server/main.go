// @title        TalentHub API
// @version      1.0
// @description  Freelance job board with direct messaging.
// @BasePath     /api
//
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        jwt
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/api"
	"github.com/talenthub/talenthub-api/internal/api/handler"
	"github.com/talenthub/talenthub-api/internal/api/middleware"
	"github.com/talenthub/talenthub-api/internal/core/service"
	mongodb "github.com/talenthub/talenthub-api/internal/infrastructure/db/mongo"
	redisdb "github.com/talenthub/talenthub-api/internal/infrastructure/db/redis"
	"github.com/talenthub/talenthub-api/internal/infrastructure/mq"
	"github.com/talenthub/talenthub-api/internal/infrastructure/queue"
	"github.com/talenthub/talenthub-api/internal/infrastructure/realtime"
	"github.com/talenthub/talenthub-api/internal/pkg/config"
	"github.com/talenthub/talenthub-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel))

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		if err := mongodb.Disconnect(mongoClient); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to redis")
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)
	messages := mongodb.NewMessageRepository(db)
	media := mongodb.NewMediaStore(db, cfg.MaxMedia)
	for name, repo := range map[string]interface{ EnsureIndexes(context.Context) error }{
		"users":    users,
		"jobs":     jobs,
		"messages": messages,
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("ensure indexes")
		}
	}

	events := queue.NewDispatcher(0, newEventSink(cfg, log), logger.Component("events"))
	events.Start()
	defer events.Close()

	hub := realtime.NewHub(logger.Component("realtime"))

	// --- Services ---
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.Session.TTL)
	authService := service.NewAuthService(users, tokens, redisdb.NewRevocationStore(rdb), logger.Component("auth"))
	profileService := service.NewProfileService(users, media)
	jobService := service.NewJobService(jobs, users, events, logger.Component("jobs"))
	messageService := service.NewMessageService(messages, users, media, hub, events, logger.Component("messages"))

	ipExtractor, err := api.ClientIPExtractor(cfg.HTTP.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}

	e := api.NewRouter(api.Deps{
		Log:          log,
		Auth:         authService,
		Profiles:     profileService,
		Jobs:         jobService,
		Messages:     messageService,
		Relay:        hub,
		Media:        media,
		Readiness:    handler.NewHealthDependenciesHandler(db, rdb),
		Cookie:       handler.SessionCookie{Name: cfg.Session.CookieName, Secure: !cfg.IsDevelopment()},
		ClientOrigin: cfg.HTTP.ClientOrigin,
		LoginLimiter: middleware.NewFixedWindowStore(cfg.HTTP.LoginRateLimit, cfg.HTTP.LoginRateWindow),
		IPExtractor:  ipExtractor,
		MaxBodyBytes: cfg.MaxRequestBytes(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown.
	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// newEventSink connects to RabbitMQ when configured. A broker that cannot be
// reached disables publishing rather than blocking startup.
func newEventSink(cfg *config.Config, log zerolog.Logger) queue.Sink {
	if cfg.AMQP.URL == "" {
		log.Info().Msg("AMQP_URL not set, domain events disabled")
		return mq.Noop{}
	}
	pub, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, domain events disabled")
		return mq.Noop{}
	}
	return pub
}
