package usecase

import (
	"testing"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

func intPtr(v int) *int { return &v }

func TestExtractStat_SimpleFields(t *testing.T) {
	rec := playerstats.Record{
		Hits:               intPtr(2),
		Runs:               intPtr(1),
		RBIs:               intPtr(3),
		HomeRuns:           intPtr(1),
		Walks:              intPtr(0),
		OutsRecorded:       intPtr(18),
		StrikeoutsPitching: intPtr(7),
	}

	cases := []struct {
		propType prop.Type
		want     float64
	}{
		{prop.TypeHits, 2},
		{prop.TypeRunsScored, 1},
		{prop.TypeRBIs, 3},
		{prop.TypeHomeRuns, 1},
		{prop.TypeWalks, 0},
		{prop.TypeOutsRecorded, 18},
		{prop.TypeStrikeoutsPitching, 7},
	}
	for _, tc := range cases {
		got, ok := ExtractStat(tc.propType, rec)
		if !ok {
			t.Fatalf("%s: expected ok", tc.propType)
		}
		if got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.propType, got, tc.want)
		}
	}
}

func TestExtractStat_MissingSimpleFieldIsNotZero(t *testing.T) {
	rec := playerstats.Record{Hits: intPtr(2)}

	if _, ok := ExtractStat(prop.TypeRunsScored, rec); ok {
		t.Fatalf("expected ok=false for absent runs field")
	}
	if _, ok := ExtractStat(prop.TypeEarnedRuns, rec); ok {
		t.Fatalf("expected ok=false for absent earned runs field")
	}
}

func TestExtractStat_Singles(t *testing.T) {
	rec := playerstats.Record{
		Hits:     intPtr(4),
		Doubles:  intPtr(1),
		Triples:  intPtr(1),
		HomeRuns: intPtr(1),
	}

	got, ok := ExtractStat(prop.TypeSingles, rec)
	if !ok || got != 1 {
		t.Fatalf("unexpected singles: got=%v ok=%v want=1", got, ok)
	}

	// Missing components count as zero for derived categories.
	partial := playerstats.Record{Hits: intPtr(2)}
	got, ok = ExtractStat(prop.TypeSingles, partial)
	if !ok || got != 2 {
		t.Fatalf("unexpected singles with partial record: got=%v ok=%v want=2", got, ok)
	}
}

func TestExtractStat_TotalBases(t *testing.T) {
	t.Run("prefers recorded total", func(t *testing.T) {
		rec := playerstats.Record{
			TotalBases: intPtr(9),
			Hits:       intPtr(1),
		}
		got, ok := ExtractStat(prop.TypeTotalBases, rec)
		if !ok || got != 9 {
			t.Fatalf("unexpected total bases: got=%v ok=%v want=9", got, ok)
		}
	})

	t.Run("derives from components", func(t *testing.T) {
		rec := playerstats.Record{
			Hits:     intPtr(4),
			Doubles:  intPtr(1),
			Triples:  intPtr(1),
			HomeRuns: intPtr(1),
		}
		// 1 single + 2 + 3 + 4
		got, ok := ExtractStat(prop.TypeTotalBases, rec)
		if !ok || got != 10 {
			t.Fatalf("unexpected derived total bases: got=%v ok=%v want=10", got, ok)
		}
	})
}

func TestExtractStat_Composites(t *testing.T) {
	rec := playerstats.Record{
		Hits: intPtr(2),
		Runs: intPtr(1),
		RBIs: intPtr(3),
	}

	got, ok := ExtractStat(prop.TypeHitsRunsRBIs, rec)
	if !ok || got != 6 {
		t.Fatalf("unexpected hits+runs+rbis: got=%v ok=%v want=6", got, ok)
	}

	got, ok = ExtractStat(prop.TypeRunsRBIs, rec)
	if !ok || got != 4 {
		t.Fatalf("unexpected runs+rbis: got=%v ok=%v want=4", got, ok)
	}
}

func TestExtractStat_UnknownType(t *testing.T) {
	if _, ok := ExtractStat(prop.Type("batting_average"), playerstats.Record{}); ok {
		t.Fatalf("expected ok=false for unknown prop type")
	}
}
