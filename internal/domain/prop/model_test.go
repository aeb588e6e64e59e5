package prop

import "testing"

func TestParseType(t *testing.T) {
	cases := []struct {
		raw  string
		want Type
	}{
		{"hits", TypeHits},
		{"Hits", TypeHits},
		{"Total Bases", TypeTotalBases},
		{"Hits + Runs + RBIs", TypeHitsRunsRBIs},
		{"Runs + RBIs", TypeRunsRBIs},
		{"Strikeouts (Pitching)", TypeStrikeoutsPitching},
		{"Strikeouts (Batting)", TypeStrikeoutsBatting},
		{"  stolen_bases  ", TypeStolenBases},
		{"Home Runs", TypeHomeRuns},
		{"Outs Recorded", TypeOutsRecorded},
	}
	for _, tc := range cases {
		got, ok := ParseType(tc.raw)
		if !ok {
			t.Fatalf("%q: expected ok", tc.raw)
		}
		if got != tc.want {
			t.Fatalf("%q: got=%s want=%s", tc.raw, got, tc.want)
		}
	}
}

func TestParseType_Unknown(t *testing.T) {
	for _, raw := range []string{"", "batting average", "saves", "hits+errors"} {
		if got, ok := ParseType(raw); ok {
			t.Fatalf("%q: expected ok=false, got %s", raw, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	if got, ok := ParseDirection(" Over "); !ok || got != DirectionOver {
		t.Fatalf("unexpected direction: got=%s ok=%v", got, ok)
	}
	if got, ok := ParseDirection("UNDER"); !ok || got != DirectionUnder {
		t.Fatalf("unexpected direction: got=%s ok=%v", got, ok)
	}
	if _, ok := ParseDirection("either"); ok {
		t.Fatalf("expected ok=false for unknown direction")
	}
}

func TestStatusTerminalAndScored(t *testing.T) {
	if StatusPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	for _, s := range []Status{StatusWin, StatusLoss, StatusPush, StatusDNP, StatusExpired} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}

	for _, s := range []Status{StatusWin, StatusLoss, StatusPush} {
		if !s.Scored() {
			t.Fatalf("%s should carry a result", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusDNP, StatusExpired} {
		if s.Scored() {
			t.Fatalf("%s must not carry a result", s)
		}
	}
}
