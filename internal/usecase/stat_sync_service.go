package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/etime"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

const defaultSyncWorkers = 4

// StatSyncService pulls final box scores from the stats provider and upserts
// normalized per-player records. It owns the player_stats table; the resolver
// only reads it.
type StatSyncService struct {
	stats    playerstats.Repository
	provider StatsProvider
	logger   *logging.Logger
	now      func() time.Time
	workers  int
}

type SyncSummary struct {
	Date        string
	Games       int
	Players     int
	FailedGames int
}

func NewStatSyncService(
	stats playerstats.Repository,
	provider StatsProvider,
	logger *logging.Logger,
	workers int,
) *StatSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultSyncWorkers
	}
	return &StatSyncService{
		stats:    stats,
		provider: provider,
		logger:   logger,
		now:      time.Now,
		workers:  workers,
	}
}

// SyncYesterday syncs the previous Eastern calendar date, the default cadence
// before a resolution pass.
func (s *StatSyncService) SyncYesterday(ctx context.Context) (SyncSummary, error) {
	return s.SyncDate(ctx, etime.At(s.now()).DaysAgo(1))
}

// SyncDate fetches every Final game for the date and upserts each player's
// stat line. Per-game failures are counted, not fatal.
func (s *StatSyncService) SyncDate(ctx context.Context, date time.Time) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatSyncService.SyncDate")
	defer span.End()

	dateStr := date.Format("2006-01-02")
	gamePks, err := s.provider.FinalGamePks(ctx, dateStr)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("list final games for %s: %w", dateStr, err)
	}
	s.logger.InfoContext(ctx, "stat sync starting", "date", dateStr, "final_games", len(gamePks))

	summary := SyncSummary{Date: dateStr, Games: len(gamePks)}
	if len(gamePks) == 0 {
		return summary, nil
	}

	workerCount := s.workers
	if workerCount > len(gamePks) {
		workerCount = len(gamePks)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("create sync worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg          sync.WaitGroup
		players     atomic.Int64
		failedGames atomic.Int64
	)
	for _, gamePk := range gamePks {
		gamePk := gamePk
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			count, gameErr := s.syncGame(ctx, gamePk, date)
			if gameErr != nil {
				failedGames.Add(1)
				s.logger.WarnContext(ctx, "game sync failed", "game_pk", gamePk, "error", gameErr)
				return
			}
			players.Add(int64(count))
		})
		if submitErr != nil {
			wg.Done()
			failedGames.Add(1)
			s.logger.WarnContext(ctx, "failed to submit game sync task", "game_pk", gamePk, "error", submitErr)
		}
	}
	wg.Wait()

	summary.Players = int(players.Load())
	summary.FailedGames = int(failedGames.Load())
	s.logger.InfoContext(ctx, "stat sync finished",
		"date", dateStr,
		"games", summary.Games,
		"players", summary.Players,
		"failed_games", summary.FailedGames,
	)
	return summary, nil
}

func (s *StatSyncService) syncGame(ctx context.Context, gamePk int64, date time.Time) (int, error) {
	lines, err := s.provider.BoxscoreLines(ctx, gamePk)
	if err != nil {
		return 0, fmt.Errorf("fetch boxscore: %w", err)
	}

	records := make([]playerstats.Record, 0, len(lines))
	for _, line := range lines {
		if line.PlayerID == "" {
			continue
		}
		records = append(records, playerstats.Record{
			PlayerID:           line.PlayerID,
			GameID:             gamePk,
			GameDate:           date,
			Team:               line.Team,
			Opponent:           line.Opponent,
			IsHome:             line.IsHome,
			Position:           line.Position,
			Hits:               line.Hits,
			Runs:               line.Runs,
			RBIs:               line.RBIs,
			Doubles:            line.Doubles,
			Triples:            line.Triples,
			HomeRuns:           line.HomeRuns,
			Walks:              line.Walks,
			StrikeoutsBatting:  line.StrikeoutsBatting,
			StolenBases:        line.StolenBases,
			TotalBases:         line.TotalBases,
			OutsRecorded:       line.OutsRecorded,
			StrikeoutsPitching: line.StrikeoutsPitching,
			WalksAllowed:       line.WalksAllowed,
			EarnedRuns:         line.EarnedRuns,
			HitsAllowed:        line.HitsAllowed,
		})
	}

	if len(records) == 0 {
		return 0, nil
	}
	if err := s.stats.UpsertMany(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert stat records: %w", err)
	}
	return len(records), nil
}
