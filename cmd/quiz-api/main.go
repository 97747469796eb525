// cmd/quiz-api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rto-workers/internal/api"
	"rto-workers/internal/catalog"
	"rto-workers/internal/common/config"
	"rto-workers/internal/common/database"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/metrics"
	"rto-workers/internal/common/observability"
)

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": "quiz-api",
		"version": cfg.App.Version,
	})

	obs := observability.New("quiz-api", log)
	defer obs.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var deps catalog.Deps
	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			zapLog.Fatal("postgres setup failed", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.Ping(ctx); err != nil {
			zapLog.Fatal("postgres unreachable", zap.Error(err))
		}
		deps.Postgres = pg.DB
	}
	if cfg.Catalog.CacheTTL > 0 {
		rdb := database.NewRedis(cfg.Database.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			// The cache degrades to the origin, so this is not fatal.
			zapLog.Warn("redis unreachable, catalog cache will miss", zap.Error(err))
		}
		deps.Redis = rdb.Client
	}

	src, err := catalog.NewSource(cfg.Catalog, deps, log)
	if err != nil {
		zapLog.Fatal("catalog source setup failed", zap.Error(err))
	}
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	metrics.CatalogProviders.WithLabelValues(cat.Source()).Set(float64(cat.Len()))
	zapLog.Info("Catalog loaded", zap.String("source", cat.Source()), zap.Int("providers", cat.Len()))

	svc := api.NewAPIService(cfg.API, cat, obs, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(cfg.API.Address)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("quiz api failed", zap.Error(err))
		}
	case <-sigCh:
		zapLog.Info("Shutdown signal received")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping quiz api", zap.Error(err))
	}
	zapLog.Info("Quiz API stopped gracefully")
}
