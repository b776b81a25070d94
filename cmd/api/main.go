package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/analytics"
	httptransport "github.com/spec-kit/hr-analytics/internal/api/http"
	"github.com/spec-kit/hr-analytics/internal/api/http/handlers"
	"github.com/spec-kit/hr-analytics/internal/cache"
	"github.com/spec-kit/hr-analytics/internal/config"
	"github.com/spec-kit/hr-analytics/internal/dataset"
	"github.com/spec-kit/hr-analytics/internal/events"
	"github.com/spec-kit/hr-analytics/internal/observability"
	"github.com/spec-kit/hr-analytics/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadOpts := dataset.Options{MaxAgeYears: cfg.Dataset.MaxAgeYears}
	ds, err := dataset.LoadWithLogging(cfg.Dataset.Path, loadOpts, logger)
	if err != nil {
		logger.Fatal("failed to load dataset", zap.Error(err),
			zap.String("hint", "set DATASET_PATH to the input CSV location"))
	}
	store := dataset.NewStore(ds)

	resultCache := cache.New(cfg.Redis, cfg.Cache, logger)
	defer resultCache.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartCacheInvalidator(resultCache, dispatcher, logger)

	if cfg.Dataset.WatchReload {
		watcher, err := dataset.NewWatcher(cfg.Dataset.Path, loadOpts, store, dispatcher, logger)
		if err != nil {
			logger.Warn("dataset watcher unavailable, reload on file change disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
		}
	}

	service := analytics.NewService(analytics.Dependencies{
		Store:  store,
		Cache:  resultCache,
		Logger: logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, service, resultCache, metrics)
	dashboardHandler := handlers.NewDashboardHandler(service)
	exportHandler := handlers.NewExportHandler(service)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Dashboard: dashboardHandler,
		Export:    exportHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
