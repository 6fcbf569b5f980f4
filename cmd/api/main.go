// Copyright (c) 2026 Socio. All rights reserved.

// Command api is the entry point for the Socio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/socioapp/socio/internal/api"
	"github.com/socioapp/socio/internal/platform/config"
	"github.com/socioapp/socio/internal/platform/constants"
	"github.com/socioapp/socio/internal/platform/migration"
	pgstore "github.com/socioapp/socio/internal/platform/postgres"
	redisstore "github.com/socioapp/socio/internal/platform/redis"
	"github.com/socioapp/socio/internal/platform/sec"
	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/social/engagement"
	"github.com/socioapp/socio/internal/social/follow"
	"github.com/socioapp/socio/internal/social/group"
	"github.com/socioapp/socio/internal/social/post"
	"github.com/socioapp/socio/internal/social/report"
	"github.com/socioapp/socio/internal/social/share"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/auth"
	"github.com/socioapp/socio/internal/users/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "socio"))
	slog.SetDefault(log)

	log.Info("[Socio] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "socio"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context outlives startup. It is cancelled on shutdown so
	// long-lived middleware (rate limiter cleanup) stops with the server.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Platform Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	fileStore, err := storage.NewDiskStore(cfg.UploadDir, log)
	must(log, err, "initialize file store")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	// Repositories share the single pgx pool; caches share the Redis client.
	userRepository := user.NewPostgresRepository(pool)
	followRepository := follow.NewPostgresRepository(pool)
	groupRepository := group.NewPostgresRepository(pool)
	postRepository := post.NewPostgresRepository(pool)
	engagementRepository := engagement.NewPostgresRepository(pool)
	shareRepository := share.NewPostgresRepository(pool)
	reportRepository := report.NewPostgresRepository(pool)

	profileCache := user.NewRedisProfileCache(rdb, log)
	postCache := post.NewRedisCache(rdb, log)

	userService := user.NewService(userRepository, profileCache, log)
	authService := auth.NewService(userRepository, jwtSvc, log)
	followService := follow.NewService(followRepository, userService, profileCache, log)

	// The visibility engine reads the social graph through the user service
	// (identity cache), the follow service, and the group repository.
	engine := visibility.NewEngine(userService, followService, groupRepository)

	groupService := group.NewService(groupRepository, engine, log)
	postService := post.NewService(postRepository, postRepository, engine, fileStore, postCache, userRepository, log)
	engagementService := engagement.NewService(engagementRepository, postRepository, engine, postCache, log)
	shareService := share.NewService(shareRepository, postRepository, userService, engine, log)
	reportService := report.NewService(reportRepository, postRepository, engine, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Follow:     follow.NewHandler(followService),
		Group:      group.NewHandler(groupService),
		Post:       post.NewHandler(postService),
		Engagement: engagement.NewHandler(engagementService),
		Share:      share.NewHandler(shareService),
		Report:     report.NewHandler(reportService),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
