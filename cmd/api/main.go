// Package main is the entry point for the ferry operations API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/config"
	"github.com/naminara/ferry-logbook/internal/handler"
	"github.com/naminara/ferry-logbook/internal/metrics"
	"github.com/naminara/ferry-logbook/internal/middleware"
	"github.com/naminara/ferry-logbook/internal/repo"
	"github.com/naminara/ferry-logbook/internal/service"
	"github.com/naminara/ferry-logbook/internal/store"
	"github.com/naminara/ferry-logbook/migrations"
)

// maxBodySize caps request bodies at 1 MiB. The largest legitimate payload
// is the log collection slot, which stays far below this.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Persistence ------------------------------------------------------
	// With DATABASE_URL set, slots live in Postgres and survive restarts.
	// Without it the server runs fully in memory, which is enough for local
	// development and demos.
	slots := repo.NewMemorySlotRepo()
	if cfg.DatabaseURL != "" {
		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")
		slots = repo.NewSlotRepo(pool)
	} else {
		slog.Warn("DATABASE_URL not set; state is in-memory only")
	}

	st, err := store.New(context.Background(), slots, logger)
	if err != nil {
		slog.Error("failed to load store", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	var sender service.Sender = service.NewSimulatedSender(cfg.SimulatedSendDelay)
	if cfg.TelegramEnabled {
		sender = service.NewTelegramSender()
	}

	tokens := auth.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	srv := handler.NewServer(
		service.NewLogService(st),
		service.NewUserService(st),
		service.NewDashboardService(st),
		service.NewExportService(st),
		service.NewNotifyService(st, sender),
		tokens,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body size cap. The metrics middleware lives inside
	// Routes so it can read chi route patterns.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", srv.Routes(metrics.NewRegistry()))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations. goose needs database/sql, so a
// short-lived stdlib connection is opened just for this step.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	if _, err := provider.Up(context.Background()); err != nil {
		return err
	}
	return nil
}
