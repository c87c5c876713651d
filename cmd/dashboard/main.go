// Command dashboard loads the raid CSV, runs the aggregation pipeline
// once, and serves the dashboard API over HTTP until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/raid-data-dashboard/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/raid-data-dashboard/internal/adapter/http"
	"github.com/couchcryptid/raid-data-dashboard/internal/config"
	"github.com/couchcryptid/raid-data-dashboard/internal/dataset"
	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
	"github.com/couchcryptid/raid-data-dashboard/internal/observability"
	"github.com/couchcryptid/raid-data-dashboard/internal/pipeline"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	scorer := domain.NewScorer(
		domain.ScoreWeights{
			Target:     cfg.Score.TargetWeight,
			Incendiary: cfg.Score.IncendiaryWeight,
			Tonnage:    cfg.Score.TonnageWeight,
		},
		cfg.Score.TonnageCeiling,
		cfg.Score.AreaCategories,
	)
	logger.Info("scorer configured",
		"target_weight", cfg.Score.TargetWeight,
		"incendiary_weight", cfg.Score.IncendiaryWeight,
		"tonnage_weight", cfg.Score.TonnageWeight,
		"tonnage_ceiling", cfg.Score.TonnageCeiling,
		"area_categories", scorer.AreaCategoryList(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := csvfile.NewReader(cfg.InputPath, logger)
	p := pipeline.New(reader, scorer, logger, metrics)

	result, err := p.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrEmptyInput):
		// Serve the empty dataset; the dashboard shows "no data".
		logger.Warn("input produced no usable raids", "path", cfg.InputPath)
	case err != nil:
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	snap := dataset.New(result, cfg.FilterCacheSize, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, snap, cfg.ChartsDir, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
