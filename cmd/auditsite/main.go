// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command auditsite serves the firm's marketing site API and admin backend.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/cache"
	"github.com/olegiv/auditsite/internal/config"
	"github.com/olegiv/auditsite/internal/handler/api"
	"github.com/olegiv/auditsite/internal/logging"
	"github.com/olegiv/auditsite/internal/middleware"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/scheduler"
	"github.com/olegiv/auditsite/internal/store"
	"github.com/olegiv/auditsite/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "auditsite - marketing site API and admin backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_JWT_SECRET              Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_DB_PATH                 SQLite database path (default: ./data/auditsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_SERVER_PORT             Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_ENV                     Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_PRIMARY_ADMIN_EMAIL     Protected admin account (default: admin@example.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_PRIMARY_ADMIN_PASSWORD  Seed password (random when empty)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_CORS_ORIGINS            Comma-separated allowed origins\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_REDIS_URL               Redis URL for the response cache (memory when empty)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUDITSITE_CACHE_TTL               Response cache TTL, 0 disables (default: 5m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.New(appVersion, appGitCommit, appBuildTime)
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.SeedPrimaryAdmin(ctx, db, store.PrimaryAdmin{
		Email:    cfg.PrimaryAdminEmail,
		Name:     cfg.PrimaryAdminName,
		Password: cfg.PrimaryAdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding primary admin: %w", err)
	}

	var responseCache cache.Cache
	if cfg.CacheEnabled() {
		responseCache, err = cache.New(cache.Config{
			RedisURL:   cfg.RedisURL,
			Prefix:     cfg.CachePrefix,
			DefaultTTL: cfg.CacheTTL,
		})
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
		defer func() { _ = responseCache.Close() }()
		// A shared Redis may still hold responses rendered by a previous release.
		if err := responseCache.Clear(ctx); err != nil {
			slog.Warn("failed to clear response cache", "error", err)
		}
		backend := "memory"
		if cfg.RedisURL != "" {
			backend = "redis"
		}
		slog.Info("response cache enabled", "backend", backend, "ttl", cfg.CacheTTL)
	}

	sched := scheduler.New(db, slog.Default(), cfg.EventRetention())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           newRouter(cfg, db, responseCache, info),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newRouter wires the global middleware, the metrics endpoint and the API.
func newRouter(cfg *config.Config, db *sql.DB, responseCache cache.Cache, info version.Info) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	apiHandler := api.NewHandler(db, api.Config{
		Tokens:            tokens,
		Limits:            query.Limits{Default: cfg.DefaultPageLimit, Max: cfg.MaxPageLimit},
		PrimaryAdminEmail: cfg.PrimaryAdminEmail,
		Version:           info,
		Cache:             responseCache,
		CacheTTL:          cfg.CacheTTL,
	})
	verifier := auth.StoreVerifier{Tokens: tokens, Users: store.New(db)}
	limiter := middleware.NewIPRateLimiter(cfg.ContactRate, cfg.ContactBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment()))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/api", apiHandler.Routes(verifier, limiter))
	slog.Info("REST API mounted at /api")

	return r
}
