package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dugoutlabs/prop-pipeline/internal/app"
	"github.com/dugoutlabs/prop-pipeline/internal/config"
	"github.com/dugoutlabs/prop-pipeline/internal/observability"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/etime"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	syncDate := flag.String("date", "", "sync stats for a specific date (YYYY-MM-DD, eastern) instead of yesterday")
	skipSync := flag.Bool("skip-sync", false, "skip the stat sync step")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	pipeline, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}
	defer func() { _ = pipeline.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if exitCode := run(ctx, pipeline, logger, *syncDate, *skipSync); exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context, pipeline *app.Pipeline, logger *logging.Logger, syncDate string, skipSync bool) int {
	if !skipSync {
		var err error
		if syncDate != "" {
			date, parseErr := time.ParseInLocation("2006-01-02", syncDate, etime.Location())
			if parseErr != nil {
				logger.Error("invalid -date value", "date", syncDate, "error", parseErr)
				return 2
			}
			_, err = pipeline.StatSync.SyncDate(ctx, date)
		} else {
			_, err = pipeline.StatSync.SyncYesterday(ctx)
		}
		if err != nil {
			// Resolution still runs; already-synced records stay usable.
			logger.Error("stat sync failed", "error", err)
		}
	}

	if _, err := pipeline.Resolution.RunPass(ctx); err != nil {
		logger.Error("resolution pass failed", "error", err)
		return 1
	}

	if pipeline.Prediction != nil {
		if _, err := pipeline.Prediction.BackfillPending(ctx); err != nil {
			logger.Error("prediction backfill failed", "error", err)
		}
	}

	return 0
}
