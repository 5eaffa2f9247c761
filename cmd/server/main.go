package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/wordwall/backend/api/handlers"
	"github.com/wordwall/backend/internal/config"
	"github.com/wordwall/backend/internal/db"
	"github.com/wordwall/backend/internal/logging"
	"github.com/wordwall/backend/internal/metrics"
	"github.com/wordwall/backend/internal/model"
	"github.com/wordwall/backend/internal/repository"
	"github.com/wordwall/backend/internal/wall"
	"github.com/wordwall/backend/internal/word"
	"github.com/wordwall/backend/internal/ws"
)

func main() {
	envFile := flag.String("config", "", "path to env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// Initialize database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Initialize metrics
	promRegistry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)
	wsMetrics := metrics.NewWebSocketMetrics(promRegistry)
	wallMetrics := metrics.NewWallMetrics(promRegistry)

	clock := clockwork.NewRealClock()

	// Initialize wall registry
	registry := wall.NewRegistry(wall.Config{Clock: clock, Logger: logger})
	registry.SetOnCreate(func(*model.Wall) {
		wallMetrics.WallsCreated.Inc()
	})

	// Initialize live-update hub
	hub := ws.NewHub(ws.HubConfig{
		Logger:     logger,
		Metrics:    wsMetrics,
		SendBuffer: cfg.WSSendBuffer,
	})
	defer hub.Close()

	// Initialize word manager
	wordManager := word.NewManager(registry, repository.NewWordRepository(database), hub, word.Config{
		Clock:   clock,
		Logger:  logger,
		Metrics: wallMetrics,
	})

	router := handlers.NewRouter(
		handlers.RouterConfig{Metrics: httpMetrics, Registry: promRegistry, Walls: registry},
		handlers.NewWallHandler(registry, wordManager, logger),
		handlers.NewWordHandler(wordManager, logger),
		handlers.NewWebSocketHandler(ws.NewHandler(hub, cfg.AllowedOrigins, logger), logger),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	// Shutdown does not track hijacked connections; close them through the hub.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
