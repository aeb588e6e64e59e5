package etime

import (
	"testing"
	"time"
)

func TestSnapshot_ConvertsToEastern(t *testing.T) {
	// 2026-07-16 02:30 UTC is still 22:30 on the 15th in New York.
	utc := time.Date(2026, time.July, 16, 2, 30, 0, 0, time.UTC)
	snap := At(utc)

	if got := snap.DateString(); got != "2026-07-15" {
		t.Fatalf("unexpected date: got=%s want=2026-07-15", got)
	}
	if got := snap.TimeOfDay(); got != "22:30" {
		t.Fatalf("unexpected time of day: got=%s want=22:30", got)
	}
}

func TestSnapshot_DateIsMidnightEastern(t *testing.T) {
	snap := At(time.Date(2026, time.July, 15, 18, 45, 12, 0, Location()))
	date := snap.Date()

	if h, m, s := date.Clock(); h != 0 || m != 0 || s != 0 {
		t.Fatalf("date should be midnight, got %02d:%02d:%02d", h, m, s)
	}
	if date.Location() != Location() {
		t.Fatalf("date should carry the eastern zone")
	}
}

func TestSnapshot_DaysAgo(t *testing.T) {
	snap := At(time.Date(2026, time.July, 15, 13, 0, 0, 0, Location()))

	got := snap.DaysAgo(2)
	want := time.Date(2026, time.July, 13, 0, 0, 0, 0, Location())
	if !got.Equal(want) {
		t.Fatalf("unexpected days-ago date: got=%s want=%s", got, want)
	}
}

func TestTimeOfDay_ComparesLexically(t *testing.T) {
	early := At(time.Date(2026, time.July, 15, 9, 5, 0, 0, Location())).TimeOfDay()
	late := At(time.Date(2026, time.July, 15, 19, 10, 0, 0, Location())).TimeOfDay()

	if !(early < late) {
		t.Fatalf("expected %q < %q", early, late)
	}
}
