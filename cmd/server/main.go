// @title        Atendimentos API
// @version      1.0
// @description  Service-desk attendance log and user roster.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/servicedesk/atendimentos/internal/api"
	"github.com/servicedesk/atendimentos/internal/core/service"
	"github.com/servicedesk/atendimentos/internal/infrastructure/db/redis"
	"github.com/servicedesk/atendimentos/internal/infrastructure/db/relational"
	"github.com/servicedesk/atendimentos/internal/infrastructure/http/handlers"
	"github.com/servicedesk/atendimentos/internal/pkg/config"
	"github.com/servicedesk/atendimentos/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "atendimentos",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Database ---
	dbCfg := relational.Config{
		DatabaseURL:  cfg.Database.URL,
		SQLitePath:   cfg.Database.SQLitePath,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Log:          logger.Component("db"),
	}
	db, err := relational.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer func() { _ = relational.Close(db) }()
	log.Info().Str("dialect", relational.Dialect(dbCfg)).Msg("database ready")

	userRepo := relational.NewUserRepository(db)
	eventRepo := relational.NewEventRepository(db)

	checks := []handlers.DependencyCheck{{Name: "database", Ping: userRepo.Ping}}

	// --- Redis (optional) ---
	var idem service.IdempotencyStore
	redisCfg := redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks = append(checks, handlers.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return pingRedis(ctx, rdb) },
		})
		log.Info().Str("addr", redisCfg.Addr).Msg("redis idempotency enabled")
	}

	// --- Services ---
	userService := service.NewUserService(userRepo, cfg.BcryptCost, logger.Component("users"))
	eventService := service.NewEventService(eventRepo, idem, logger.Component("events"))

	router := api.NewRouter(api.Dependencies{
		Users:        userService,
		Events:       eventService,
		Location:     loc,
		Log:          logger.Component("http"),
		CORSOrigins:  cfg.CORSOrigins,
		HealthChecks: checks,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErrors:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func pingRedis(ctx context.Context, rdb *goredis.Client) error {
	return rdb.Ping(ctx).Err()
}
