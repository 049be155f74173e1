package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mahyar-jbr/pet-ai-assistant/config"
	httpDelivery "github.com/mahyar-jbr/pet-ai-assistant/internal/delivery/http"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/infrastructure/cache"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/infrastructure/catalog"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/infrastructure/store"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/logging"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pet-ai-assistant: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("store", cfg.Store.Type).
		Strs("catalog_sources", cfg.Catalog.Sources).
		Msg("starting pet-ai-assistant")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	sources, err := catalog.NewSources(
		cfg.Catalog.Sources,
		cfg.Catalog.RequestTimeout,
		cfg.Server.Environment == "development",
		logger,
	)
	if err != nil {
		return fmt.Errorf("configure catalog sources: %w", err)
	}

	profileStore, err := store.New(ctx, store.Config{Type: cfg.Store.Type, RedisURL: cfg.Store.RedisURL}, logger)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer profileStore.Close()

	memo := cache.NewMemoryCache(0)
	defer memo.Close()

	// Initialize usecase layer
	recommendations := usecase.NewRecommendationService(
		sources,
		memo,
		usecase.RecommendationServiceConfig{
			Pipeline: usecase.PipelineConfig{
				MinScore:           cfg.Recommend.MinScore,
				Limit:              cfg.Recommend.Limit,
				RankByScore:        cfg.Recommend.RankByScore,
				EnableDebugLogging: cfg.Recommend.EnableDebugLogging,
			},
			CacheTTL: cfg.Cache.TTL,
		},
		logger,
	)
	profiles := usecase.NewProfileService(profileStore, logger)

	// The server starts even when the first load fails; requests get 503 until a refresh succeeds
	if err := recommendations.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial catalog load failed")
	}
	recommendations.StartRefresher(ctx, cfg.Catalog.RefreshInterval)

	handler := httpDelivery.NewHandler(recommendations, profiles, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info().Msg("server exited")
	return nil
}
