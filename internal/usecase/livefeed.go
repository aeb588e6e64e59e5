package usecase

import (
	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

// Base values credited per hit event when reconstructing total bases from a
// play-by-play log instead of end-of-game batting totals.
var hitBaseValues = map[string]int{
	"Single":   1,
	"Double":   2,
	"Triple":   3,
	"Home Run": 4,
}

var liveScannable = map[prop.Type]struct{}{
	prop.TypeHits:               {},
	prop.TypeWalks:              {},
	prop.TypeSingles:            {},
	prop.TypeDoubles:            {},
	prop.TypeTriples:            {},
	prop.TypeHomeRuns:           {},
	prop.TypeRBIs:               {},
	prop.TypeRunsScored:         {},
	prop.TypeStolenBases:        {},
	prop.TypeStrikeoutsBatting:  {},
	prop.TypeStrikeoutsPitching: {},
	prop.TypeHitsAllowed:        {},
	prop.TypeTotalBases:         {},
}

// CanScanLiveFeed reports whether a prop type can be reconstructed from the
// play-by-play log. Composite and pitching-workload categories cannot.
func CanScanLiveFeed(propType prop.Type) bool {
	_, ok := liveScannable[propType]
	return ok
}

// ScanFeedStat replays a game's event log and accumulates the stat for one
// player and prop type. ok is false when the prop type has no accumulation
// rule; a zero count for a scannable type is a real result.
func ScanFeedStat(feed ExternalGameFeed, playerID int64, propType prop.Type) (float64, bool) {
	if !CanScanLiveFeed(propType) {
		return 0, false
	}

	total := 0
	for _, play := range feed.Plays {
		isBatter := play.BatterID == playerID
		isPitcher := play.PitcherID == playerID
		// Runner-based categories also require the player to be the play's
		// batter or pitcher; a baserunner on another hitter's plate
		// appearance earns no credit.
		if !isBatter && !isPitcher {
			continue
		}

		switch propType {
		case prop.TypeHits:
			if isBatter && play.EventType == "hit" {
				total++
			}
		case prop.TypeWalks:
			if isBatter && play.EventType == "walk" {
				total++
			}
		case prop.TypeSingles:
			if isBatter && play.Event == "Single" {
				total++
			}
		case prop.TypeDoubles:
			if isBatter && play.Event == "Double" {
				total++
			}
		case prop.TypeTriples:
			if isBatter && play.Event == "Triple" {
				total++
			}
		case prop.TypeHomeRuns:
			if isBatter && play.Event == "Home Run" {
				total++
			}
		case prop.TypeRBIs:
			// RBI counts accumulate per event, not per plate appearance.
			if isBatter {
				total += play.RBI
			}
		case prop.TypeRunsScored:
			if runnerReached(play, playerID, "score") {
				total++
			}
		case prop.TypeStolenBases:
			if play.EventType == "stolen_base" && runnerMatches(play, playerID) {
				total++
			}
		case prop.TypeStrikeoutsBatting:
			if isBatter && play.Event == "Strikeout" {
				total++
			}
		case prop.TypeStrikeoutsPitching:
			if isPitcher && play.Event == "Strikeout" {
				total++
			}
		case prop.TypeHitsAllowed:
			if isPitcher && play.EventType == "hit" {
				total++
			}
		case prop.TypeTotalBases:
			if isBatter && play.EventType == "hit" {
				total += hitBaseValues[play.Event]
			}
		}
	}

	return float64(total), true
}

func runnerReached(play ExternalFeedPlay, playerID int64, movementEnd string) bool {
	for _, runner := range play.Runners {
		if runner.RunnerID == playerID && runner.MovementEnd == movementEnd {
			return true
		}
	}
	return false
}

func runnerMatches(play ExternalFeedPlay, playerID int64) bool {
	for _, runner := range play.Runners {
		if runner.RunnerID == playerID {
			return true
		}
	}
	return false
}
