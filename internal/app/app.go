package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/dugoutlabs/prop-pipeline/external/mlbstats"
	"github.com/dugoutlabs/prop-pipeline/external/predictor"
	"github.com/dugoutlabs/prop-pipeline/internal/config"
	"github.com/dugoutlabs/prop-pipeline/internal/infrastructure/repository/postgres"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
	"github.com/dugoutlabs/prop-pipeline/internal/usecase"
)

// Pipeline bundles the wired services the binaries run.
type Pipeline struct {
	DB         *sqlx.DB
	Resolution *usecase.ResolutionService
	StatSync   *usecase.StatSyncService
	Prediction *usecase.PredictionService
}

// Close releases the database handle.
func (p *Pipeline) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// Build wires repositories, external clients and services from config.
func Build(cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	propRepo := postgres.NewPropRepository(db)
	statsRepo := postgres.NewPlayerStatsRepository(db)

	statsClient := mlbstats.NewClient(mlbstats.ClientConfig{
		BaseURL:        cfg.MLBStatsBaseURL,
		Timeout:        cfg.MLBStatsTimeout,
		MaxRetries:     cfg.MLBStatsMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.MLBStatsCircuit,
	})

	pipeline := &Pipeline{
		DB: db,
		Resolution: usecase.NewResolutionService(propRepo, statsRepo, statsClient, logger).
			WithStaleAfterDays(cfg.StaleAfterDays),
		StatSync: usecase.NewStatSyncService(statsRepo, statsClient, logger, cfg.SyncWorkers),
	}

	if cfg.PredictorEnabled {
		predictorClient := predictor.NewClient(predictor.ClientConfig{
			BaseURL:        cfg.PredictorBaseURL,
			Timeout:        cfg.PredictorTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.PredictorCircuit,
		})
		pipeline.Prediction = usecase.NewPredictionService(propRepo, statsRepo, predictorClient, logger)
	}

	return pipeline, nil
}
