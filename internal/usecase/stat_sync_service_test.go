package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/dugoutlabs/prop-pipeline/internal/infrastructure/repository/memory"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

func TestSyncDate_UpsertsEveryFinalGame(t *testing.T) {
	provider := &fakeProvider{
		finals: []int64{745804, 745805},
		lines: map[int64][]ExternalStatLine{
			745804: {
				{PlayerID: "660271", FullName: "Shohei Ohtani", Team: "LAD", Hits: intPtr(2)},
				{PlayerID: "605141", FullName: "Mookie Betts", Team: "LAD", Hits: intPtr(1)},
			},
			745805: {
				{PlayerID: "592450", FullName: "Aaron Judge", Team: "NYY", Hits: intPtr(3)},
			},
		},
	}
	stats := memory.NewPlayerStatsRepository(nil)
	svc := NewStatSyncService(stats, provider, logging.NewNop(), 2)
	svc.now = refClock

	summary, err := svc.SyncDate(context.Background(), refDate().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("sync date: %v", err)
	}
	if summary.Games != 2 {
		t.Fatalf("unexpected games count: got=%d want=2", summary.Games)
	}
	if summary.Players != 3 {
		t.Fatalf("unexpected players count: got=%d want=3", summary.Players)
	}
	if summary.FailedGames != 0 {
		t.Fatalf("unexpected failed games: got=%d", summary.FailedGames)
	}
	if stats.Count() != 3 {
		t.Fatalf("unexpected stored records: got=%d want=3", stats.Count())
	}

	rec, err := stats.FindByPlayerAndDate(context.Background(), "660271", refDate().AddDate(0, 0, -1))
	if err != nil || rec == nil {
		t.Fatalf("expected synced record, got rec=%v err=%v", rec, err)
	}
	if rec.Hits == nil || *rec.Hits != 2 {
		t.Fatalf("unexpected hits: %v", rec.Hits)
	}
}

func TestSyncDate_ScheduleFailureIsFatal(t *testing.T) {
	provider := &fakeProvider{finalsErr: fmt.Errorf("schedule down")}
	svc := NewStatSyncService(memory.NewPlayerStatsRepository(nil), provider, logging.NewNop(), 2)

	if _, err := svc.SyncDate(context.Background(), refDate()); err == nil {
		t.Fatalf("expected error when schedule fetch fails")
	}
}

func TestSyncDate_GameFailureIsCounted(t *testing.T) {
	provider := &fakeProvider{
		finals:   []int64{745804},
		linesErr: fmt.Errorf("boxscore down"),
	}
	stats := memory.NewPlayerStatsRepository(nil)
	svc := NewStatSyncService(stats, provider, logging.NewNop(), 2)

	summary, err := svc.SyncDate(context.Background(), refDate())
	if err != nil {
		t.Fatalf("sync date: %v", err)
	}
	if summary.FailedGames != 1 || summary.Players != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if stats.Count() != 0 {
		t.Fatalf("no records should be stored")
	}
}

func TestSyncDate_NoFinalGames(t *testing.T) {
	svc := NewStatSyncService(memory.NewPlayerStatsRepository(nil), &fakeProvider{}, logging.NewNop(), 2)

	summary, err := svc.SyncDate(context.Background(), refDate())
	if err != nil {
		t.Fatalf("sync date: %v", err)
	}
	if summary.Games != 0 || summary.Players != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
