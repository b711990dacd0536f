package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotels_api/internal/adapters/http_server"
	"hotels_api/internal/adapters/observability"
	redisad "hotels_api/internal/adapters/redis"
	"hotels_api/internal/app"
	"hotels_api/internal/auth"
	"hotels_api/internal/domain"
	"hotels_api/internal/shared"
	"hotels_api/internal/storage/sqlstore"
)

func main() {
	cfg := shared.MustLoad()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sqlstore.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database open failed")
	}
	if cfg.AutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate failed")
		}
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")

	// deps
	repo := sqlstore.New(db)
	var sessions domain.SessionStore = repo
	if cfg.SessionStore == "redis" {
		rs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rs.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rs.Close()
		sessions = rs
	}
	hotels := app.NewHotelService(repo, repo, repo)
	authn := server.NewAuthenticator(auth.NewSigner(cfg.JWTSecret, 0), sessions, cfg.SessionStore)

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Hotels: hotels}, authn)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
