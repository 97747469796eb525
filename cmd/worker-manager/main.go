// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rto-workers/internal/catalog"
	"rto-workers/internal/common/camunda"
	"rto-workers/internal/common/config"
	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/metrics"
	"rto-workers/internal/common/observability"
	"rto-workers/pkg/registry"
)

const healthAddress = ":8080"

// retryWithBackoff attempts to execute a function with exponential backoff.
// Coded errors marked non-retryable end the loop at once.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return fmt.Errorf("%s failed: %w", operationName, err)
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// isRetryable treats plain errors (dial failures and the like) as transient.
func isRetryable(err error) bool {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return true
}

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	if err := cfg.RequireCamunda(); err != nil {
		zapLog.Fatal("invalid configuration", zap.Error(err))
	}

	zapLog = logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": "worker-manager",
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting worker manager...", zap.String("catalogSource", cfg.Catalog.Source))

	obs := observability.New("worker-manager", log)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Backing services, only those the configuration uses ---
	conns, err := connect(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("backing service connection failed", zap.Error(err))
	}
	defer conns.Close()

	// --- Catalog ---
	src, err := catalog.NewSource(cfg.Catalog, conns.catalogDeps(), log)
	if err != nil {
		zapLog.Fatal("catalog source setup failed", zap.Error(err))
	}

	var cat *catalog.Catalog
	err = retryWithBackoff(func() error {
		loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		var err error
		cat, err = catalog.Load(loadCtx, src)
		return err
	}, 5, 2*time.Second, zapLog, "Catalog load")
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	metrics.CatalogProviders.WithLabelValues(cat.Source()).Set(float64(cat.Len()))
	zapLog.Info("Catalog loaded",
		zap.String("source", cat.Source()),
		zap.Int("providers", cat.Len()),
		zap.Strings("coveredRegions", cat.CoveredRegions()),
	)

	// --- Workers ---
	regs, err := registrations(ctx, cfg, cat, conns, log)
	if err != nil {
		zapLog.Fatal("worker setup failed", zap.Error(err))
	}
	taskTypes := make([]string, 0, len(regs))
	for i := range regs {
		taskTypes = append(taskTypes, regs[i].TaskType)
		regs[i] = camunda.Instrument(regs[i], obs)
	}
	if err := registry.Default().CheckTaskTypes(taskTypes); err != nil {
		zapLog.Fatal("worker registry out of date", zap.Error(err))
	}
	workers := camunda.StartAll(zeebe.GetClient(), regs, cfg, log)
	zapLog.Info("Workers registered", zap.Int("started", len(workers)), zap.Int("configured", len(regs)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              healthAddress,
		Handler:           healthMux(zeebe, cat),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening on " + healthAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stopWorkers(shutdownCtx, workers, zapLog)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// stopWorkers closes every job worker and waits for in-flight jobs, giving up
// when ctx expires.
func stopWorkers(ctx context.Context, workers []worker.JobWorker, log *zap.Logger) {
	done := make(chan struct{})
	go func() {
		for _, w := range workers {
			w.Close()
		}
		for _, w := range workers {
			w.AwaitClose()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("Timed out waiting for in-flight jobs")
	}
}

func healthMux(zeebe *camunda.Client, cat *catalog.Catalog) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ready",
			"providers": cat.Len(),
			"source":    cat.Source(),
			"time":      time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
