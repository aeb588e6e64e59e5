package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
)

type statsKey struct {
	playerID string
	gameID   int64
}

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	items map[statsKey]playerstats.Record
}

func NewPlayerStatsRepository(records []playerstats.Record) *PlayerStatsRepository {
	items := make(map[statsKey]playerstats.Record, len(records))
	for _, rec := range records {
		items[statsKey{playerID: rec.PlayerID, gameID: rec.GameID}] = rec
	}
	return &PlayerStatsRepository{items: items}
}

func (r *PlayerStatsRepository) FindByPlayerAndDate(_ context.Context, playerID string, gameDate time.Time) (*playerstats.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *playerstats.Record
	for key, rec := range r.items {
		if key.playerID != playerID || !sameDate(rec.GameDate, gameDate) {
			continue
		}
		if found == nil || rec.GameID > found.GameID {
			rec := rec
			found = &rec
		}
	}
	return found, nil
}

func (r *PlayerStatsRepository) UpsertMany(_ context.Context, records []playerstats.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		r.items[statsKey{playerID: rec.PlayerID, gameID: rec.GameID}] = rec
	}
	return nil
}

// Count returns the number of stored records, for test assertions.
func (r *PlayerStatsRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
