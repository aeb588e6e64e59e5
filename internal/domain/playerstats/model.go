package playerstats

import "time"

// Record is a normalized per-game stat line for one player, keyed by
// (player id, game id). Counting stats are pointers so that a synced row with
// no participation data ("did not play") is distinguishable from zeros.
type Record struct {
	PlayerID string
	GameID   int64
	GameDate time.Time
	Team     string
	Opponent string
	IsHome   bool
	Position string

	Hits              *int
	Runs              *int
	RBIs              *int
	Doubles           *int
	Triples           *int
	HomeRuns          *int
	Walks             *int
	StrikeoutsBatting *int
	StolenBases       *int
	TotalBases        *int

	OutsRecorded       *int
	StrikeoutsPitching *int
	WalksAllowed       *int
	EarnedRuns         *int
	HitsAllowed        *int
}

// AllNull reports whether every counting stat is absent, which the resolver
// treats as the player not having appeared in the game.
func (r Record) AllNull() bool {
	fields := []*int{
		r.Hits, r.Runs, r.RBIs, r.Doubles, r.Triples, r.HomeRuns,
		r.Walks, r.StrikeoutsBatting, r.StolenBases, r.TotalBases,
		r.OutsRecorded, r.StrikeoutsPitching, r.WalksAllowed,
		r.EarnedRuns, r.HitsAllowed,
	}
	for _, f := range fields {
		if f != nil {
			return false
		}
	}
	return true
}
