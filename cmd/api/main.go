// Package main is the entry point for the Excursions API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/excursions-app/backend/internal/config"
	"github.com/excursions-app/backend/internal/handler"
	"github.com/excursions-app/backend/internal/middleware"
	"github.com/excursions-app/backend/internal/nps"
	"github.com/excursions-app/backend/internal/repo"
	"github.com/excursions-app/backend/internal/service"
	"github.com/excursions-app/backend/migrations"
)

// maxBodySize caps request bodies at 1 MiB. The largest legitimate payload
// is a trip with a long activity list, which is far below this.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.AutoMigrate {
		if err := migrate(pool); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("database migrations applied")
	}

	// --- Services ---------------------------------------------------------
	repos := repo.NewRepos(pool)
	tx := repo.NewTxManager(pool)

	authSvc := service.NewAuthService(repos.Users, repos.Sessions, cfg.JWTSecret)
	userSvc := service.NewUserService(repos.Users, repos.Trips, repos.Excursions, tx)
	tripSvc := service.NewTripService(repos.Trips, tx)
	excursionSvc := service.NewExcursionService(repos.Excursions, repos.Trips, tx)
	friendSvc := service.NewFriendService(repos.Users, repos.FriendRequests, repos.Friendships, tx)
	inviteSvc := service.NewInviteService(repos.Users, repos.Excursions, repos.ExcursionInvites, tx)
	parks := nps.New(cfg.NPSBaseURL, cfg.NPSAPIKey)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body size limit. Authentication is applied per-route-group inside
	// Server.Routes, not globally, because sign-in and the park data proxy
	// are public.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srvHandler := handler.NewServer(authSvc, userSvc, tripSvc, excursionSvc, friendSvc, inviteSvc, parks)
	r.Mount("/", srvHandler.Routes(middleware.NewAuthenticator(authSvc)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations from the embedded FS. goose needs
// a database/sql handle, so the pool is bridged through pgx's stdlib driver.
func migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
