package prop

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a prop. Transitions are one-directional:
// once a prop leaves StatusPending it never returns.
type Status string

const (
	StatusPending Status = "pending"
	StatusWin     Status = "win"
	StatusLoss    Status = "loss"
	StatusPush    Status = "push"
	StatusDNP     Status = "dnp"
	StatusExpired Status = "expired"
)

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusWin, StatusLoss, StatusPush, StatusDNP, StatusExpired:
		return true
	default:
		return false
	}
}

// Scored reports whether the status carries a numeric result.
func (s Status) Scored() bool {
	switch s {
	case StatusWin, StatusLoss, StatusPush:
		return true
	default:
		return false
	}
}

// Direction is the side of the line a prop bets on.
type Direction string

const (
	DirectionOver  Direction = "over"
	DirectionUnder Direction = "under"
)

func ParseDirection(value string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "over":
		return DirectionOver, true
	case "under":
		return DirectionUnder, true
	default:
		return "", false
	}
}

// Type enumerates the statistical categories a prop can track.
type Type string

const (
	TypeHits               Type = "hits"
	TypeRunsScored         Type = "runs_scored"
	TypeRBIs               Type = "rbis"
	TypeHomeRuns           Type = "home_runs"
	TypeSingles            Type = "singles"
	TypeDoubles            Type = "doubles"
	TypeTriples            Type = "triples"
	TypeWalks              Type = "walks"
	TypeStrikeoutsBatting  Type = "strikeouts_batting"
	TypeStolenBases        Type = "stolen_bases"
	TypeTotalBases         Type = "total_bases"
	TypeHitsRunsRBIs       Type = "hits_runs_rbis"
	TypeRunsRBIs           Type = "runs_rbis"
	TypeOutsRecorded       Type = "outs_recorded"
	TypeStrikeoutsPitching Type = "strikeouts_pitching"
	TypeWalksAllowed       Type = "walks_allowed"
	TypeEarnedRuns         Type = "earned_runs"
	TypeHitsAllowed        Type = "hits_allowed"
)

var knownTypes = map[Type]struct{}{
	TypeHits:               {},
	TypeRunsScored:         {},
	TypeRBIs:               {},
	TypeHomeRuns:           {},
	TypeSingles:            {},
	TypeDoubles:            {},
	TypeTriples:            {},
	TypeWalks:              {},
	TypeStrikeoutsBatting:  {},
	TypeStolenBases:        {},
	TypeTotalBases:         {},
	TypeHitsRunsRBIs:       {},
	TypeRunsRBIs:           {},
	TypeOutsRecorded:       {},
	TypeStrikeoutsPitching: {},
	TypeWalksAllowed:       {},
	TypeEarnedRuns:         {},
	TypeHitsAllowed:        {},
}

// ParseType normalizes a display label such as "Hits + Runs + RBIs" or
// "Strikeouts (Pitching)" into its canonical snake_case Type.
func ParseType(raw string) (Type, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	value = strings.NewReplacer("(", "", ")", "").Replace(value)
	value = strings.ReplaceAll(value, "+", " ")
	value = strings.Join(strings.Fields(value), "_")
	value = strings.TrimRight(value, "_")

	t := Type(value)
	if _, ok := knownTypes[t]; !ok {
		return "", false
	}
	return t, true
}

// Prop is one player-statistic prediction with a line and a direction.
type Prop struct {
	ID         string
	PlayerID   string
	PlayerName string
	Team       string
	Type       Type
	Line       float64
	Direction  Direction
	GameID     int64
	// GameDate is the calendar date of the game, eastern-time semantics,
	// stored at midnight with no wall-clock meaning.
	GameDate time.Time
	// GameTime is the scheduled start as "HH:MM" eastern, empty when unknown.
	GameTime string
	Status   Status
	Result   *float64
	Outcome  *string
	// PredictedOutcome and Confidence come from the external model, when present.
	PredictedOutcome *string
	Confidence       *float64
	WasCorrect       *bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Resolution is the terminal write applied to a pending prop.
type Resolution struct {
	Status     Status
	Result     *float64
	Outcome    *string
	WasCorrect *bool
}

// DueFilter is the immutable eligibility snapshot for one resolution pass.
type DueFilter struct {
	// Today is the reference calendar date (midnight, eastern semantics).
	Today time.Time
	// TimeOfDay is the reference wall clock as "HH:MM" eastern.
	TimeOfDay string
}
