// Package memory holds in-process repository implementations used by tests
// and local development. Semantics mirror the postgres package.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

type PropRepository struct {
	mu    sync.RWMutex
	items map[string]prop.Prop
	now   func() time.Time
}

func NewPropRepository(props []prop.Prop) *PropRepository {
	items := make(map[string]prop.Prop, len(props))
	for _, p := range props {
		items[p.ID] = p
	}
	return &PropRepository{items: items, now: time.Now}
}

// Get returns a stored prop by id, for test assertions.
func (r *PropRepository) Get(id string) (prop.Prop, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	return p, ok
}

func (r *PropRepository) ListPendingDue(_ context.Context, filter prop.DueFilter) ([]prop.Prop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prop.Prop, 0, len(r.items))
	for _, p := range r.items {
		if p.Status != prop.StatusPending {
			continue
		}
		if !isDue(p, filter) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.After(out[j].GameDate)
		}
		if out[i].GameTime != out[j].GameTime {
			return out[i].GameTime > out[j].GameTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func isDue(p prop.Prop, filter prop.DueFilter) bool {
	if p.GameDate.Before(filter.Today) {
		return true
	}
	if !p.GameDate.Equal(filter.Today) {
		return false
	}
	return p.GameTime == "" || p.GameTime <= filter.TimeOfDay
}

func (r *PropRepository) UpdateResult(_ context.Context, id string, res prop.Resolution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok || p.Status != prop.StatusPending {
		return nil
	}
	p.Status = res.Status
	p.Result = res.Result
	p.Outcome = res.Outcome
	p.WasCorrect = res.WasCorrect
	p.UpdatedAt = r.now()
	r.items[id] = p
	return nil
}

func (r *PropRepository) DeleteExpiredPending(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, p := range r.items {
		if p.Status == prop.StatusPending && p.GameDate.Before(cutoff) {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *PropRepository) ListPendingWithoutPrediction(_ context.Context, limit int) ([]prop.Prop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prop.Prop, 0, len(r.items))
	for _, p := range r.items {
		if p.Status == prop.StatusPending && p.PredictedOutcome == nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PropRepository) UpdatePrediction(_ context.Context, id string, outcome string, confidence float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil
	}
	p.PredictedOutcome = &outcome
	p.Confidence = &confidence
	p.UpdatedAt = r.now()
	r.items[id] = p
	return nil
}

func (r *PropRepository) ListRecentResolved(_ context.Context, playerName string, propType prop.Type, before time.Time, limit int) ([]prop.Prop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prop.Prop, 0, 8)
	for _, p := range r.items {
		if p.PlayerName != playerName || p.Type != propType {
			continue
		}
		if !p.Status.Scored() {
			continue
		}
		if !p.GameDate.Before(before) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.After(out[j].GameDate)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
