package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"github.com/dugoutlabs/prop-pipeline/internal/app"
	"github.com/dugoutlabs/prop-pipeline/internal/config"
	"github.com/dugoutlabs/prop-pipeline/internal/observability"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

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

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		logger.Error("create scheduler", "error", err)
		os.Exit(1)
	}

	runCycle := func() {
		if _, err := pipeline.StatSync.SyncYesterday(ctx); err != nil {
			logger.Error("stat sync failed", "error", err)
		}
		if _, err := pipeline.Resolution.RunPass(ctx); err != nil {
			logger.Error("resolution pass failed", "error", err)
		}
		if pipeline.Prediction != nil {
			if _, err := pipeline.Prediction.BackfillPending(ctx); err != nil {
				logger.Error("prediction backfill failed", "error", err)
			}
		}
	}

	// During the season games finish all day, so the pipeline runs on a short
	// interval. Off-season there is nothing to resolve but stale cleanup, one
	// fixed daily run covers it.
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.SeasonInterval),
		gocron.NewTask(func() {
			if !inSeason(time.Now().UTC()) {
				return
			}
			runCycle()
		}),
	)
	if err != nil {
		logger.Error("schedule season job", "error", err)
		os.Exit(1)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(cfg.OffseasonHour), uint(cfg.OffseasonMinute), 0),
		)),
		gocron.NewTask(func() {
			if inSeason(time.Now().UTC()) {
				return
			}
			runCycle()
		}),
	)
	if err != nil {
		logger.Error("schedule offseason job", "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("cron scheduler started",
		"season_interval", cfg.SeasonInterval.String(),
		"offseason_hour_utc", cfg.OffseasonHour,
	)

	<-ctx.Done()

	if err := scheduler.Shutdown(); err != nil {
		logger.Error("scheduler shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("cron scheduler stopped")
}

// inSeason reports whether the instant falls inside the March-October window
// when games are played.
func inSeason(t time.Time) bool {
	month := t.UTC().Month()
	return month >= time.March && month <= time.October
}
