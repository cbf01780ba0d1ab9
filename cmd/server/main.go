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

	"github.com/pawtrack/backend/config"
	httpDelivery "github.com/pawtrack/backend/internal/delivery/http"
	"github.com/pawtrack/backend/internal/infrastructure/api"
	"github.com/pawtrack/backend/internal/infrastructure/cache"
	"github.com/pawtrack/backend/internal/infrastructure/store"
	"github.com/pawtrack/backend/internal/usecase"
	"github.com/pawtrack/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New()
	if cfg.Server.Environment == "development" {
		log = logger.NewDevelopment()
	}
	defer log.Sync()

	log.Infow("starting pawtrack backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
	)

	// Initialize infrastructure dependencies
	kvStore, err := store.NewFileStore(cfg.Store.Path)
	if err != nil {
		log.Fatalw("failed to open the key-value store", "path", cfg.Store.Path, "error", err)
	}
	standardsCache := cache.NewMemoryCache()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.AuthToken, cfg.API.Timeout, log)
	if cfg.API.AuthToken == "" {
		log.Warnw("upstream auth token not configured, requests will be anonymous",
			"baseUrl", cfg.API.BaseURL)
	}

	// Initialize usecase layer
	goalService := usecase.NewCalorieGoalsService(client, kvStore, standardsCache, log,
		usecase.CalorieGoalsServiceConfig{
			StandardsTTL: cfg.Standards.CacheTTL,
		})
	weightService := usecase.NewWeightTrackingService(client, log,
		usecase.WeightTrackingServiceConfig{
			RecordedByUserID: cfg.Weight.RecordedByUserID,
		})
	syncService := usecase.NewWeightDataSyncService(weightService, log,
		usecase.WeightDataSyncServiceConfig{
			NormalInterval: cfg.Sync.NormalInterval,
			FastInterval:   cfg.Sync.FastInterval,
			FastWindow:     cfg.Sync.FastWindow,
		})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(goalService, weightService, syncService, client)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Infow("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")

	// Stop the sync scheduler before refusing new requests so in-flight
	// passes finish cleanly
	syncService.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}

	log.Infow("server stopped")
}
