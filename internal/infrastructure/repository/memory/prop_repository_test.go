package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

func date(day int) time.Time {
	return time.Date(2026, time.July, day, 0, 0, 0, 0, time.UTC)
}

func pendingProp(id string, gameDate time.Time, gameTime string) prop.Prop {
	return prop.Prop{
		ID:         id,
		PlayerID:   "660271",
		PlayerName: "Shohei Ohtani",
		Type:       prop.TypeHits,
		Line:       1.5,
		Direction:  prop.DirectionOver,
		GameID:     1,
		GameDate:   gameDate,
		GameTime:   gameTime,
		Status:     prop.StatusPending,
	}
}

func TestListPendingDue_FilterAndOrder(t *testing.T) {
	repo := NewPropRepository([]prop.Prop{
		pendingProp("yesterday", date(14), "19:10"),
		pendingProp("today-started", date(15), "12:00"),
		pendingProp("today-no-time", date(15), ""),
		pendingProp("today-later", date(15), "19:10"),
		pendingProp("tomorrow", date(16), "12:00"),
	})

	got, err := repo.ListPendingDue(context.Background(), prop.DueFilter{
		Today:     date(15),
		TimeOfDay: "13:00",
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	// Newest game date first, later start times first within a date; a prop
	// with unknown start time is due and sorts last for its date.
	require.Equal(t, []string{"today-started", "today-no-time", "yesterday"}, ids)
}

func TestUpdateResult_GuardsTerminalStatus(t *testing.T) {
	repo := NewPropRepository([]prop.Prop{pendingProp("p1", date(14), "19:10")})

	result := 2.0
	outcome := "win"
	require.NoError(t, repo.UpdateResult(context.Background(), "p1", prop.Resolution{
		Status:  prop.StatusWin,
		Result:  &result,
		Outcome: &outcome,
	}))

	got, ok := repo.Get("p1")
	require.True(t, ok)
	require.Equal(t, prop.StatusWin, got.Status)

	// A second write must not flip the settled status.
	lossOutcome := "loss"
	require.NoError(t, repo.UpdateResult(context.Background(), "p1", prop.Resolution{
		Status:  prop.StatusLoss,
		Outcome: &lossOutcome,
	}))

	got, _ = repo.Get("p1")
	require.Equal(t, prop.StatusWin, got.Status)
	require.Equal(t, "win", *got.Outcome)
}

func TestDeleteExpiredPending(t *testing.T) {
	resolved := pendingProp("resolved-old", date(10), "19:10")
	resolved.Status = prop.StatusWin

	repo := NewPropRepository([]prop.Prop{
		pendingProp("stale", date(12), "19:10"),
		pendingProp("fresh", date(14), "19:10"),
		resolved,
	})

	deleted, err := repo.DeleteExpiredPending(context.Background(), date(13))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	_, ok := repo.Get("stale")
	require.False(t, ok)
	_, ok = repo.Get("fresh")
	require.True(t, ok)
	// Resolved props are never cleaned up, regardless of age.
	_, ok = repo.Get("resolved-old")
	require.True(t, ok)
}

func TestListRecentResolved(t *testing.T) {
	win := pendingProp("w", date(10), "")
	win.Status = prop.StatusWin
	loss := pendingProp("l", date(12), "")
	loss.Status = prop.StatusLoss
	dnp := pendingProp("d", date(13), "")
	dnp.Status = prop.StatusDNP
	future := pendingProp("f", date(15), "")
	future.Status = prop.StatusWin

	repo := NewPropRepository([]prop.Prop{win, loss, dnp, future})

	got, err := repo.ListRecentResolved(context.Background(), "Shohei Ohtani", prop.TypeHits, date(14), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first; dnp and out-of-window props are excluded.
	require.Equal(t, "l", got[0].ID)
	require.Equal(t, "w", got[1].ID)
}
