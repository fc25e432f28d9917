// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the maintenance-management HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the credential hasher and token service (fatal on bad settings).
//  4. Open the account directory (PostgreSQL + migrations, or memory).
//  5. Optionally put the Redis cache in front of the directory.
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

	"github.com/taibuivan/odrzavanje/internal/api"
	"github.com/taibuivan/odrzavanje/internal/platform/config"
	"github.com/taibuivan/odrzavanje/internal/platform/constants"
	"github.com/taibuivan/odrzavanje/internal/platform/migration"
	pgstore "github.com/taibuivan/odrzavanje/internal/platform/postgres"
	redisstore "github.com/taibuivan/odrzavanje/internal/platform/redis"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
	"github.com/taibuivan/odrzavanje/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("directory_cache", cfg.CacheEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Security Primitives ────────────────────────────────────────────
	hasher, err := sec.NewPasswordHasher(sec.PasswordScheme(cfg.PasswordScheme))
	must(log, err, "initialize password hasher")

	tokenService, err := sec.NewTokenService(cfg.TokenConfig())
	must(log, err, "initialize token service")

	// ── 4. Account Directory ──────────────────────────────────────────────
	var (
		directory auth.Directory
		health    api.HealthDependencies
	)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		directory = auth.NewPostgresDirectory(pool)
		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}

	case config.DriverMemory:
		log.Warn("memory_directory_in_use", slog.String("hint", "accounts are lost on restart"))
		directory = auth.NewMemoryDirectory()
	}

	// ── 5. Directory Cache (optional) ─────────────────────────────────────
	if redisstore.Enabled(cfg.RedisURL) {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		directory = auth.NewCachedDirectory(directory, rdb, cfg.DirectoryCacheTTL, log)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService, err := auth.NewService(directory, hasher, tokenService, log)
	must(log, err, "initialize auth service")
	authHandler := auth.NewHandler(authService, tokenService)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger every entry point shares.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. A [*sec.ConfigurationError] lands here and
// stops the process; nothing after startup may call it.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
