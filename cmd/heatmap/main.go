package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	httpadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/kafka"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/loader"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	style, err := render.LoadStyle(cfg.StyleFile)
	if err != nil {
		logger.Error("failed to load style", "error", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		Loader: loader.Options{
			Columns: loader.Columns{Date: cfg.DateColumn, Max: cfg.MaxColumn, Min: cfg.MinColumn},
			MinYear: cfg.MinYear,
		},
		LoadTimeout: cfg.LoadTimeout,
		Dimensions:  style.Dimensions,
		City:        cfg.City,
	}

	// Bucket publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts.Publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	src := loader.NewSource(cfg.DataSource, cfg.LoadTimeout)
	p := pipeline.New(src, opts, logger, metrics)
	renderer := render.NewCachedRenderer(style, cfg.RenderCacheSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, renderer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Load the dataset. Probes answer while it runs; a failed load is fatal.
	var loadFailed atomic.Bool
	go func() {
		err := p.Run(ctx)
		if !loadFailure(err) {
			return
		}
		logger.Error("pipeline error", "error", err, "source", src.Name())
		loadFailed.Store(true)
		stop()
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if loadFailed.Load() {
		cancel()
		os.Exit(1)
	}
}

// loadFailure reports whether a Run error should fail the process. A load
// cut short by a shutdown signal is a normal exit.
func loadFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
