package playerstats

import (
	"context"
	"time"
)

// Repository exposes read and sync operations for per-game stat records.
// Records are owned by the sync process; the resolver only reads them.
type Repository interface {
	// FindByPlayerAndDate returns the record for a player on a game date, or
	// nil when no record has been synced yet.
	FindByPlayerAndDate(ctx context.Context, playerID string, gameDate time.Time) (*Record, error)

	// UpsertMany inserts or replaces records keyed by (player_id, game_id).
	UpsertMany(ctx context.Context, records []Record) error
}
