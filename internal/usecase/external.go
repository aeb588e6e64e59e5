package usecase

import "context"

// ExternalStatLine is one player's normalized box-score line as mapped from
// the upstream provider. Counting stats stay pointers so absence survives the
// trip into the store.
type ExternalStatLine struct {
	PlayerID string
	FullName string
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

	// OutsRecorded is already reconciled by the provider client: the direct
	// outs field when present, otherwise derived from innings pitched.
	OutsRecorded       *int
	StrikeoutsPitching *int
	WalksAllowed       *int
	EarnedRuns         *int
	HitsAllowed        *int
}

// ExternalGameFeed is the ordered play-by-play log for one game.
type ExternalGameFeed struct {
	GamePk int64
	Plays  []ExternalFeedPlay
}

type ExternalFeedPlay struct {
	Event     string
	EventType string
	RBI       int
	BatterID  int64
	PitcherID int64
	Runners   []ExternalFeedRunner
}

type ExternalFeedRunner struct {
	RunnerID    int64
	MovementEnd string
}

// StatsProvider is the read-only upstream statistics source. Implementations
// must treat non-200 responses and malformed payloads as errors; callers map
// those to "source unavailable" and retry on a later pass.
type StatsProvider interface {
	// FinalGamePks lists game ids whose status is Final for a YYYY-MM-DD date.
	FinalGamePks(ctx context.Context, date string) ([]int64, error)

	// BoxscoreLines returns normalized per-player stat lines for a game.
	BoxscoreLines(ctx context.Context, gamePk int64) ([]ExternalStatLine, error)

	// GameFeed returns the full play-by-play log for a game.
	GameFeed(ctx context.Context, gamePk int64) (ExternalGameFeed, error)
}

// PredictionInput is the feature vector plus prop metadata sent to the
// external model endpoint.
type PredictionInput struct {
	PlayerName string
	Team       string
	PropType   string
	GameDate   string
	Line       float64
	Direction  string
	Features   map[string]float64
}

// ExternalPrediction is the model's opaque answer; it is persisted verbatim.
type ExternalPrediction struct {
	Outcome    string
	Confidence float64
}

// Predictor is the external prediction model endpoint.
type Predictor interface {
	Predict(ctx context.Context, input PredictionInput) (ExternalPrediction, error)
}
