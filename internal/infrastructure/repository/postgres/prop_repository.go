package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
	qb "github.com/dugoutlabs/prop-pipeline/internal/platform/querybuilder"
)

type PropRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPropRepository(db *sqlx.DB) *PropRepository {
	return &PropRepository{db: db, now: time.Now}
}

func (r *PropRepository) ListPendingDue(ctx context.Context, filter prop.DueFilter) ([]prop.Prop, error) {
	query, args, err := qb.Select("*").From("player_props").
		Where(
			qb.Eq("status", string(prop.StatusPending)),
			qb.Expr(
				"(game_date < ? OR (game_date = ? AND (game_time <= ? OR game_time IS NULL)))",
				filter.Today, filter.Today, filter.TimeOfDay,
			),
		).
		OrderBy("game_date DESC", "game_time DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending due query: %w", err)
	}

	var rows []propTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pending due props: %w", err)
	}

	out := make([]prop.Prop, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpdateResult writes the terminal state for one prop. The status guard makes
// the write idempotent: a prop already resolved by an earlier pass matches
// zero rows and stays untouched.
func (r *PropRepository) UpdateResult(ctx context.Context, id string, res prop.Resolution) error {
	query, args, err := qb.Update("player_props").
		Set("status", string(res.Status)).
		Set("result", ptrToNullFloat(res.Result)).
		Set("outcome", ptrToNullString(res.Outcome)).
		Set("was_correct", ptrToNullBool(res.WasCorrect)).
		Set("updated_at", r.now().UTC()).
		Where(
			qb.Eq("id", id),
			qb.Eq("status", string(prop.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prop result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update prop result: %w", err)
	}
	return nil
}

func (r *PropRepository) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("player_props").
		Where(
			qb.Eq("status", string(prop.StatusPending)),
			qb.Lt("game_date", cutoff),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete expired props query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired props: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted props: %w", err)
	}
	return deleted, nil
}

func (r *PropRepository) ListPendingWithoutPrediction(ctx context.Context, limit int) ([]prop.Prop, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := qb.Select("*").From("player_props").
		Where(
			qb.Eq("status", string(prop.StatusPending)),
			qb.IsNull("predicted_outcome"),
		).
		OrderBy("created_at ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list props without prediction query: %w", err)
	}

	var rows []propTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select props without prediction: %w", err)
	}

	out := make([]prop.Prop, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PropRepository) UpdatePrediction(ctx context.Context, id string, outcome string, confidence float64) error {
	query, args, err := qb.Update("player_props").
		Set("predicted_outcome", outcome).
		Set("confidence_score", confidence).
		Set("updated_at", r.now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prop prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update prop prediction: %w", err)
	}
	return nil
}

func (r *PropRepository) ListRecentResolved(ctx context.Context, playerName string, propType prop.Type, before time.Time, limit int) ([]prop.Prop, error) {
	if limit <= 0 {
		limit = 7
	}

	query, args, err := qb.Select("*").From("player_props").
		Where(
			qb.Eq("player_name", playerName),
			qb.Eq("prop_type", string(propType)),
			qb.Lt("game_date", before),
			qb.Expr("status IN (?, ?, ?)",
				string(prop.StatusWin), string(prop.StatusLoss), string(prop.StatusPush)),
		).
		OrderBy("game_date DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent resolved props query: %w", err)
	}

	var rows []propTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select recent resolved props: %w", err)
	}

	out := make([]prop.Prop, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
