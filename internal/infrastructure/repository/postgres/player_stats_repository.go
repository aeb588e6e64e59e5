package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
	qb "github.com/dugoutlabs/prop-pipeline/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db, now: time.Now}
}

func (r *PlayerStatsRepository) FindByPlayerAndDate(ctx context.Context, playerID string, gameDate time.Time) (*playerstats.Record, error) {
	query, args, err := qb.Select("*").From("player_stats").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("game_date", gameDate),
		).
		OrderBy("game_id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find player stats query: %w", err)
	}

	var row playerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get player stats: %w", err)
	}

	record := row.toDomain()
	return &record, nil
}

var playerStatsUpsertColumns = []string{
	"player_id", "game_id", "game_date", "team", "opponent", "is_home", "position",
	"hits", "runs", "rbis", "doubles", "triples", "home_runs",
	"walks", "strikeouts_batting", "stolen_bases", "total_bases",
	"outs_recorded", "strikeouts_pitching", "walks_allowed", "earned_runs", "hits_allowed",
	"updated_at",
}

const playerStatsUpsertSuffix = `ON CONFLICT (player_id, game_id) DO UPDATE SET
	game_date = EXCLUDED.game_date,
	team = EXCLUDED.team,
	opponent = EXCLUDED.opponent,
	is_home = EXCLUDED.is_home,
	position = EXCLUDED.position,
	hits = EXCLUDED.hits,
	runs = EXCLUDED.runs,
	rbis = EXCLUDED.rbis,
	doubles = EXCLUDED.doubles,
	triples = EXCLUDED.triples,
	home_runs = EXCLUDED.home_runs,
	walks = EXCLUDED.walks,
	strikeouts_batting = EXCLUDED.strikeouts_batting,
	stolen_bases = EXCLUDED.stolen_bases,
	total_bases = EXCLUDED.total_bases,
	outs_recorded = EXCLUDED.outs_recorded,
	strikeouts_pitching = EXCLUDED.strikeouts_pitching,
	walks_allowed = EXCLUDED.walks_allowed,
	earned_runs = EXCLUDED.earned_runs,
	hits_allowed = EXCLUDED.hits_allowed,
	updated_at = EXCLUDED.updated_at`

// UpsertMany writes one row per record, replacing an existing (player_id,
// game_id) row wholesale so a re-sync picks up late boxscore corrections.
func (r *PlayerStatsRepository) UpsertMany(ctx context.Context, records []playerstats.Record) error {
	if len(records) == 0 {
		return nil
	}

	builder := qb.InsertInto("player_stats").Columns(playerStatsUpsertColumns...)
	now := r.now().UTC()
	for _, rec := range records {
		builder.Values(
			rec.PlayerID, rec.GameID, rec.GameDate, rec.Team, rec.Opponent, rec.IsHome, rec.Position,
			ptrToNullInt(rec.Hits), ptrToNullInt(rec.Runs), ptrToNullInt(rec.RBIs),
			ptrToNullInt(rec.Doubles), ptrToNullInt(rec.Triples), ptrToNullInt(rec.HomeRuns),
			ptrToNullInt(rec.Walks), ptrToNullInt(rec.StrikeoutsBatting),
			ptrToNullInt(rec.StolenBases), ptrToNullInt(rec.TotalBases),
			ptrToNullInt(rec.OutsRecorded), ptrToNullInt(rec.StrikeoutsPitching),
			ptrToNullInt(rec.WalksAllowed), ptrToNullInt(rec.EarnedRuns), ptrToNullInt(rec.HitsAllowed),
			now,
		)
	}
	builder.Suffix(playerStatsUpsertSuffix)

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}
	return nil
}
