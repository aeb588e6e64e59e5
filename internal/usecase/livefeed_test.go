package usecase

import (
	"testing"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

const (
	batterID  = int64(660271)
	pitcherID = int64(477132)
	otherID   = int64(111111)
)

func sampleFeed() ExternalGameFeed {
	return ExternalGameFeed{
		GamePk: 745804,
		Plays: []ExternalFeedPlay{
			{Event: "Single", EventType: "hit", BatterID: batterID, PitcherID: pitcherID},
			{Event: "Home Run", EventType: "hit", RBI: 2, BatterID: batterID, PitcherID: pitcherID,
				Runners: []ExternalFeedRunner{{RunnerID: batterID, MovementEnd: "score"}}},
			{Event: "Strikeout", EventType: "strikeout", BatterID: otherID, PitcherID: pitcherID},
			{Event: "Walk", EventType: "walk", BatterID: batterID, PitcherID: pitcherID},
			{Event: "Stolen Base 2B", EventType: "stolen_base", BatterID: otherID, PitcherID: pitcherID,
				Runners: []ExternalFeedRunner{{RunnerID: batterID, MovementEnd: "2B"}}},
			{Event: "Strikeout", EventType: "strikeout", BatterID: batterID, PitcherID: pitcherID},
			// Scores from second on another batter's double; no credit, the
			// player is neither batter nor pitcher on the play.
			{Event: "Double", EventType: "hit", BatterID: otherID, PitcherID: pitcherID,
				Runners: []ExternalFeedRunner{{RunnerID: batterID, MovementEnd: "score"}}},
		},
	}
}

func TestScanFeedStat_BatterCounts(t *testing.T) {
	feed := sampleFeed()

	cases := []struct {
		propType prop.Type
		want     float64
	}{
		{prop.TypeHits, 2},
		{prop.TypeSingles, 1},
		{prop.TypeHomeRuns, 1},
		{prop.TypeWalks, 1},
		{prop.TypeRBIs, 2},
		{prop.TypeRunsScored, 1},
		{prop.TypeStrikeoutsBatting, 1},
		{prop.TypeTotalBases, 5},
	}
	for _, tc := range cases {
		got, ok := ScanFeedStat(feed, batterID, tc.propType)
		if !ok {
			t.Fatalf("%s: expected ok", tc.propType)
		}
		if got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.propType, got, tc.want)
		}
	}
}

func TestScanFeedStat_PitcherCounts(t *testing.T) {
	feed := sampleFeed()

	got, ok := ScanFeedStat(feed, pitcherID, prop.TypeStrikeoutsPitching)
	if !ok || got != 2 {
		t.Fatalf("unexpected pitching strikeouts: got=%v ok=%v want=2", got, ok)
	}

	got, ok = ScanFeedStat(feed, pitcherID, prop.TypeHitsAllowed)
	if !ok || got != 3 {
		t.Fatalf("unexpected hits allowed: got=%v ok=%v want=3", got, ok)
	}
}

func TestScanFeedStat_StolenBaseRequiresParticipation(t *testing.T) {
	feed := sampleFeed()

	// The stealing runner was not the batter or pitcher of the steal play.
	got, ok := ScanFeedStat(feed, batterID, prop.TypeStolenBases)
	if !ok || got != 0 {
		t.Fatalf("unexpected stolen bases for runner: got=%v ok=%v want=0", got, ok)
	}

	// The batter of record does not appear among the runners.
	got, ok = ScanFeedStat(feed, otherID, prop.TypeStolenBases)
	if !ok || got != 0 {
		t.Fatalf("unexpected stolen bases for batter of record: got=%v ok=%v want=0", got, ok)
	}
}

func TestScanFeedStat_RunnerOnlyPlaysNotCredited(t *testing.T) {
	feed := ExternalGameFeed{Plays: []ExternalFeedPlay{
		{Event: "Double", EventType: "hit", BatterID: 111, PitcherID: 222,
			Runners: []ExternalFeedRunner{{RunnerID: batterID, MovementEnd: "score"}}},
		{Event: "Stolen Base 2B", EventType: "stolen_base", BatterID: 111, PitcherID: 222,
			Runners: []ExternalFeedRunner{{RunnerID: batterID, MovementEnd: "2B"}}},
	}}

	got, ok := ScanFeedStat(feed, batterID, prop.TypeRunsScored)
	if !ok || got != 0 {
		t.Fatalf("run on another batter's play must not be credited: got=%v ok=%v", got, ok)
	}
	got, ok = ScanFeedStat(feed, batterID, prop.TypeStolenBases)
	if !ok || got != 0 {
		t.Fatalf("steal on another batter's play must not be credited: got=%v ok=%v", got, ok)
	}
}

func TestScanFeedStat_ZeroIsARealResult(t *testing.T) {
	got, ok := ScanFeedStat(sampleFeed(), int64(999999), prop.TypeHits)
	if !ok {
		t.Fatalf("expected ok for scannable type with no events")
	}
	if got != 0 {
		t.Fatalf("got=%v want=0", got)
	}
}

func TestScanFeedStat_UnsupportedTypes(t *testing.T) {
	for _, propType := range []prop.Type{
		prop.TypeHitsRunsRBIs,
		prop.TypeRunsRBIs,
		prop.TypeOutsRecorded,
		prop.TypeWalksAllowed,
		prop.TypeEarnedRuns,
	} {
		if _, ok := ScanFeedStat(sampleFeed(), batterID, propType); ok {
			t.Fatalf("%s: expected ok=false, type is not scannable", propType)
		}
		if CanScanLiveFeed(propType) {
			t.Fatalf("%s: expected CanScanLiveFeed=false", propType)
		}
	}
}
