// Package main implements the HTTP API server for fuzzr.
package main

import (
	"context"
	"fmt"
	"log"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/dsjohal14/fuzzr/internal/http"
	"github.com/dsjohal14/fuzzr/internal/libs/config"
	"github.com/dsjohal14/fuzzr/internal/libs/obs"
	"github.com/dsjohal14/fuzzr/internal/scope/db"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	// Postgres when DATABASE_URL is set, otherwise the file store in DATA_DIR
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := db.Open(ctx, cfg.DatabaseURL, cfg.DataDir)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer func() { _ = store.Close() }()

	if cfg.DatabaseURL != "" {
		logger.Info().Msg("using Postgres collection store")
	} else {
		logger.Info().Str("data_dir", cfg.DataDir).Msg("using file collection store")
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid search defaults")
	}

	// Create HTTP handler
	handler := apihttp.NewHandler(store, apihttp.Defaults{
		Oracle:   cfg.Search.Oracle,
		Options:  opts,
		MaxItems: cfg.Search.MaxItems,
	}, logger)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info().
		Str("addr", addr).
		Str("oracle", cfg.Search.Oracle).
		Msg("starting API server")

	srv := &http.Server{
		Addr:              addr,
		Handler:           apihttp.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop, release := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer release()

	go func() {
		<-stop.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}
