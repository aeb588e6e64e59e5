package config

import (
	"testing"
	"time"

	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ServiceName != "prop-pipeline" {
		t.Fatalf("unexpected service name: %s", cfg.ServiceName)
	}
	if cfg.MLBStatsBaseURL != "https://statsapi.mlb.com/api" {
		t.Fatalf("unexpected stats base url: %s", cfg.MLBStatsBaseURL)
	}
	if cfg.MLBStatsTimeout != 8*time.Second {
		t.Fatalf("unexpected stats timeout: %s", cfg.MLBStatsTimeout)
	}
	if cfg.SyncWorkers != 4 {
		t.Fatalf("unexpected sync workers: %d", cfg.SyncWorkers)
	}
	if cfg.StaleAfterDays != 2 {
		t.Fatalf("unexpected stale-after days: %d", cfg.StaleAfterDays)
	}
	if cfg.SeasonInterval != 30*time.Minute {
		t.Fatalf("unexpected season interval: %s", cfg.SeasonInterval)
	}
	if cfg.OffseasonHour != 10 || cfg.OffseasonMinute != 0 {
		t.Fatalf("unexpected offseason schedule: %d:%d", cfg.OffseasonHour, cfg.OffseasonMinute)
	}
	if cfg.PredictorEnabled {
		t.Fatalf("predictor should default to disabled")
	}
	if !cfg.MLBStatsCircuit.Enabled {
		t.Fatalf("stats circuit should default to enabled")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoadPredictorRequiresBaseURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PREDICTOR_ENABLED", "true")
	t.Setenv("PREDICTOR_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when predictor enabled without base url")
	}
}

func TestLoadUptraceRequiresDSN(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when uptrace enabled without dsn")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("SYNC_WORKERS", "8")
	t.Setenv("STALE_AFTER_DAYS", "3")
	t.Setenv("SEASON_INTERVAL", "15m")
	t.Setenv("MLB_STATS_CIRCUIT_FAILURE_COUNT", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.SyncWorkers != 8 || cfg.StaleAfterDays != 3 {
		t.Fatalf("unexpected worker settings: %d %d", cfg.SyncWorkers, cfg.StaleAfterDays)
	}
	if cfg.SeasonInterval != 15*time.Minute {
		t.Fatalf("unexpected season interval: %s", cfg.SeasonInterval)
	}
	if cfg.MLBStatsCircuit.FailureThreshold != 10 {
		t.Fatalf("unexpected circuit failure count: %d", cfg.MLBStatsCircuit.FailureThreshold)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SYNC_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SYNC_WORKERS=0")
	}
}
