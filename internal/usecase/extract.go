package usecase

import (
	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

// ExtractStat maps a synced stat record to the numeric value a prop type is
// measured against. ok is false for an unknown prop type or when a simple
// category's backing field has not been populated yet; the caller treats that
// as "try again next run", never as zero.
//
// Derived categories compute from components, with an absent component
// counting as zero. Whether the player appeared at all is decided one layer
// up via Record.AllNull, not here.
func ExtractStat(propType prop.Type, rec playerstats.Record) (float64, bool) {
	switch propType {
	case prop.TypeHits:
		return fromField(rec.Hits)
	case prop.TypeRunsScored:
		return fromField(rec.Runs)
	case prop.TypeRBIs:
		return fromField(rec.RBIs)
	case prop.TypeHomeRuns:
		return fromField(rec.HomeRuns)
	case prop.TypeDoubles:
		return fromField(rec.Doubles)
	case prop.TypeTriples:
		return fromField(rec.Triples)
	case prop.TypeWalks:
		return fromField(rec.Walks)
	case prop.TypeStrikeoutsBatting:
		return fromField(rec.StrikeoutsBatting)
	case prop.TypeStolenBases:
		return fromField(rec.StolenBases)
	case prop.TypeSingles:
		return float64(singles(rec)), true
	case prop.TypeTotalBases:
		// Prefer the recorded total when the source carried one; derive from
		// components otherwise.
		if rec.TotalBases != nil {
			return float64(*rec.TotalBases), true
		}
		total := singles(rec) + 2*intOrZero(rec.Doubles) + 3*intOrZero(rec.Triples) + 4*intOrZero(rec.HomeRuns)
		return float64(total), true
	case prop.TypeHitsRunsRBIs:
		return float64(intOrZero(rec.Hits) + intOrZero(rec.Runs) + intOrZero(rec.RBIs)), true
	case prop.TypeRunsRBIs:
		return float64(intOrZero(rec.Runs) + intOrZero(rec.RBIs)), true
	case prop.TypeOutsRecorded:
		return fromField(rec.OutsRecorded)
	case prop.TypeStrikeoutsPitching:
		return fromField(rec.StrikeoutsPitching)
	case prop.TypeWalksAllowed:
		return fromField(rec.WalksAllowed)
	case prop.TypeEarnedRuns:
		return fromField(rec.EarnedRuns)
	case prop.TypeHitsAllowed:
		return fromField(rec.HitsAllowed)
	default:
		return 0, false
	}
}

func singles(rec playerstats.Record) int {
	return intOrZero(rec.Hits) - intOrZero(rec.Doubles) - intOrZero(rec.Triples) - intOrZero(rec.HomeRuns)
}

func fromField(field *int) (float64, bool) {
	if field == nil {
		return 0, false
	}
	return float64(*field), true
}

func intOrZero(field *int) int {
	if field == nil {
		return 0
	}
	return *field
}
