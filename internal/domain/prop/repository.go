package prop

import (
	"context"
	"time"
)

// Repository exposes the persistence operations the resolution pipeline needs.
// Writes are idempotent: result updates only apply while status is pending.
type Repository interface {
	// ListPendingDue returns pending props whose game has started relative to
	// the filter snapshot, ordered by game_date then game_time descending.
	ListPendingDue(ctx context.Context, filter DueFilter) ([]Prop, error)

	// UpdateResult writes a terminal resolution for the prop, guarded on the
	// row still being pending. Updating an already-terminal prop is a no-op.
	UpdateResult(ctx context.Context, id string, res Resolution) error

	// DeleteExpiredPending removes pending props with game_date strictly
	// before cutoff and returns the number of rows deleted.
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)

	// ListPendingWithoutPrediction returns pending props that have no model
	// prediction attached yet, oldest first.
	ListPendingWithoutPrediction(ctx context.Context, limit int) ([]Prop, error)

	// UpdatePrediction attaches the external model's output to a prop.
	UpdatePrediction(ctx context.Context, id string, outcome string, confidence float64) error

	// ListRecentResolved returns the most recent resolved same-type props for
	// a player before the given date, newest first, for feature building.
	ListRecentResolved(ctx context.Context, playerName string, propType Type, before time.Time, limit int) ([]Prop, error)
}
