package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

const (
	defaultPredictionBatchLimit = 50
	featureWindow               = 7
)

// PredictionService attaches model predictions to pending props that have
// none yet. The model is an opaque collaborator: its answer is persisted
// verbatim and never validated beyond shape.
type PredictionService struct {
	props     prop.Repository
	stats     playerstats.Repository
	predictor Predictor
	logger    *logging.Logger
	now       func() time.Time
	limit     int
}

type BackfillSummary struct {
	Examined  int
	Predicted int
	Skipped   int
}

func NewPredictionService(props prop.Repository, stats playerstats.Repository, predictor Predictor, logger *logging.Logger) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		props:     props,
		stats:     stats,
		predictor: predictor,
		logger:    logger,
		now:       time.Now,
		limit:     defaultPredictionBatchLimit,
	}
}

// BackfillPending requests a prediction for each pending prop without one.
// Per-prop failures skip the prop; resolution never depends on this step.
func (s *PredictionService) BackfillPending(ctx context.Context) (BackfillSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.BackfillPending")
	defer span.End()

	pending, err := s.props.ListPendingWithoutPrediction(ctx, s.limit)
	if err != nil {
		return BackfillSummary{}, fmt.Errorf("list props without prediction: %w", err)
	}

	summary := BackfillSummary{Examined: len(pending)}
	for _, item := range pending {
		features := s.buildFeatures(ctx, item)

		predicted, err := s.predictor.Predict(ctx, PredictionInput{
			PlayerName: item.PlayerName,
			Team:       item.Team,
			PropType:   string(item.Type),
			GameDate:   item.GameDate.Format("2006-01-02"),
			Line:       item.Line,
			Direction:  string(item.Direction),
			Features:   features,
		})
		if err != nil {
			summary.Skipped++
			s.logger.WarnContext(ctx, "prediction request failed",
				"prop_id", item.ID, "player", item.PlayerName, "error", err)
			continue
		}

		if err := s.props.UpdatePrediction(ctx, item.ID, predicted.Outcome, predicted.Confidence); err != nil {
			summary.Skipped++
			s.logger.WarnContext(ctx, "failed to persist prediction",
				"prop_id", item.ID, "error", err)
			continue
		}
		summary.Predicted++
	}

	s.logger.InfoContext(ctx, "prediction backfill finished",
		"examined", summary.Examined,
		"predicted", summary.Predicted,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// buildFeatures derives the feature vector from the player's most recent
// resolved props of the same type plus the home/away side of the game.
func (s *PredictionService) buildFeatures(ctx context.Context, item prop.Prop) map[string]float64 {
	features := map[string]float64{
		"rolling_result_avg_7": 0.5,
		"win_streak":           0,
		"hit_streak":           0,
		"is_home":              0,
	}

	// The synced stat record carries the home/away side; absent a record
	// (game not synced yet) the feature stays at its away default.
	rec, err := s.stats.FindByPlayerAndDate(ctx, item.PlayerID, item.GameDate)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load stat record for features",
			"player", item.PlayerName, "error", err)
	} else if rec != nil && rec.IsHome {
		features["is_home"] = 1
	}

	recent, err := s.props.ListRecentResolved(ctx, item.PlayerName, item.Type, item.GameDate, featureWindow)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load recent props for features",
			"player", item.PlayerName, "error", err)
		return features
	}
	if len(recent) == 0 {
		return features
	}

	wins := 0
	for _, past := range recent {
		if past.Status == prop.StatusWin {
			wins++
		}
	}
	features["rolling_result_avg_7"] = float64(wins) / float64(len(recent))

	streak := 0
	for _, past := range recent {
		if past.Status != prop.StatusWin {
			break
		}
		streak++
	}
	features["win_streak"] = float64(streak)
	features["hit_streak"] = float64(streak)

	return features
}
