package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/etime"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
)

// Pending props whose game date falls this many days behind the reference
// date are considered permanently unresolvable and get deleted.
const defaultStaleAfterDays = 2

// ResolutionService settles pending props against synced box-score records,
// falling back to a live-feed replay when no record exists yet.
type ResolutionService struct {
	props          prop.Repository
	stats          playerstats.Repository
	provider       StatsProvider
	logger         *logging.Logger
	now            func() time.Time
	staleAfterDays int
}

// PassSummary is the tally of one resolution pass.
type PassSummary struct {
	Due     int
	Updated int
	Skipped int
	Errors  int
	Expired int64
}

func NewResolutionService(
	props prop.Repository,
	stats playerstats.Repository,
	provider StatsProvider,
	logger *logging.Logger,
) *ResolutionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResolutionService{
		props:          props,
		stats:          stats,
		provider:       provider,
		logger:         logger,
		now:            time.Now,
		staleAfterDays: defaultStaleAfterDays,
	}
}

// WithStaleAfterDays overrides the cleanup window. Values below one day keep
// the default.
func (s *ResolutionService) WithStaleAfterDays(days int) *ResolutionService {
	if days >= 1 {
		s.staleAfterDays = days
	}
	return s
}

// RunPass resolves every due pending prop once, then expires stale ones.
// Per-prop failures (including panics) are isolated and tallied; only an
// infrastructure failure on the due-props query aborts the pass.
func (s *ResolutionService) RunPass(ctx context.Context) (PassSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.RunPass")
	defer span.End()

	// One snapshot for the whole pass so eligibility cannot drift mid-run.
	snapshot := etime.At(s.now())

	due, err := s.props.ListPendingDue(ctx, prop.DueFilter{
		Today:     snapshot.Date(),
		TimeOfDay: snapshot.TimeOfDay(),
	})
	if err != nil {
		return PassSummary{}, fmt.Errorf("list due pending props: %w", err)
	}

	summary := PassSummary{Due: len(due)}
	s.logger.InfoContext(ctx, "resolution pass starting", "due", len(due), "reference_date", snapshot.DateString())

	for _, item := range due {
		var (
			resolved   bool
			resolveErr error
		)
		recovered := panics.Try(func() {
			resolved, resolveErr = s.resolveOne(ctx, item)
		})
		switch {
		case recovered != nil:
			summary.Errors++
			s.logger.ErrorContext(ctx, "panic while resolving prop",
				"prop_id", item.ID,
				"player", item.PlayerName,
				"panic", recovered.String(),
			)
		case resolveErr != nil:
			summary.Errors++
			s.logger.ErrorContext(ctx, "failed to resolve prop",
				"prop_id", item.ID,
				"player", item.PlayerName,
				"error", resolveErr,
			)
		case resolved:
			summary.Updated++
		default:
			summary.Skipped++
		}
	}

	expired, err := s.props.DeleteExpiredPending(ctx, snapshot.DaysAgo(s.staleAfterDays))
	if err != nil {
		// Cleanup failure never fails the pass; the next run retries.
		s.logger.WarnContext(ctx, "failed to delete stale pending props", "error", err)
	}
	summary.Expired = expired

	s.logger.InfoContext(ctx, "resolution pass finished",
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"expired", summary.Expired,
	)
	return summary, nil
}

// resolveOne settles a single prop. It returns true when a terminal status was
// written, false when the prop was skipped and stays pending for the next
// pass. Errors are reserved for unexpected failures the batch isolates.
func (s *ResolutionService) resolveOne(ctx context.Context, item prop.Prop) (bool, error) {
	// Negative lines are data-entry defects; never score them.
	if item.Line < 0 {
		s.logger.WarnContext(ctx, "invalid negative prop line, skipping",
			"prop_id", item.ID, "line", item.Line)
		return false, nil
	}

	source := "boxscore"
	record, err := s.stats.FindByPlayerAndDate(ctx, item.PlayerID, item.GameDate)
	if err != nil {
		s.logger.WarnContext(ctx, "stat record lookup failed, falling back to live feed",
			"prop_id", item.ID, "player_id", item.PlayerID, "error", err)
		record = nil
	}

	var (
		value float64
		ok    bool
	)
	if record != nil {
		// A synced row with every stat null means the player never appeared.
		// This short-circuits before any live-feed fallback.
		if record.AllNull() {
			res := prop.Resolution{Status: prop.StatusDNP}
			if err := s.props.UpdateResult(ctx, item.ID, res); err != nil {
				s.logger.ErrorContext(ctx, "failed to mark prop dnp", "prop_id", item.ID, "error", err)
				return false, nil
			}
			s.logger.InfoContext(ctx, "prop marked dnp",
				"prop_id", item.ID, "player", item.PlayerName)
			return true, nil
		}
		value, ok = ExtractStat(item.Type, *record)
	} else {
		source = "live"
		value, ok = s.scanLiveFeed(ctx, item)
	}

	if !ok {
		s.logger.WarnContext(ctx, "no stat available for prop yet",
			"prop_id", item.ID,
			"player", item.PlayerName,
			"prop_type", item.Type,
			"source", source,
		)
		return false, nil
	}

	status := Classify(value, item.Line, item.Direction)
	outcome := string(status)
	wasCorrect := compareToPrediction(item.PredictedOutcome, status)

	res := prop.Resolution{
		Status:     status,
		Result:     &value,
		Outcome:    &outcome,
		WasCorrect: wasCorrect,
	}
	if err := s.props.UpdateResult(ctx, item.ID, res); err != nil {
		// The prop stays pending and is retried on the next pass.
		s.logger.ErrorContext(ctx, "failed to persist prop result",
			"prop_id", item.ID, "error", err)
		return false, nil
	}

	s.logger.InfoContext(ctx, "prop resolved",
		"prop_id", item.ID,
		"player", item.PlayerName,
		"prop_type", item.Type,
		"value", value,
		"line", item.Line,
		"direction", item.Direction,
		"outcome", outcome,
		"source", source,
	)
	return true, nil
}

func (s *ResolutionService) scanLiveFeed(ctx context.Context, item prop.Prop) (float64, bool) {
	playerID, err := strconv.ParseInt(item.PlayerID, 10, 64)
	if err != nil {
		s.logger.WarnContext(ctx, "prop player id is not numeric, cannot scan live feed",
			"prop_id", item.ID, "player_id", item.PlayerID)
		return 0, false
	}

	feed, err := s.provider.GameFeed(ctx, item.GameID)
	if err != nil {
		// Source unavailable, not a zero result.
		s.logger.WarnContext(ctx, "live feed unavailable",
			"prop_id", item.ID, "game_pk", item.GameID, "error", err)
		return 0, false
	}

	return ScanFeedStat(feed, playerID, item.Type)
}

// Classify compares an actual value against the line and direction.
func Classify(value, line float64, direction prop.Direction) prop.Status {
	if value == line {
		return prop.StatusPush
	}
	if (value > line && direction == prop.DirectionOver) ||
		(value < line && direction == prop.DirectionUnder) {
		return prop.StatusWin
	}
	return prop.StatusLoss
}

// compareToPrediction derives the was_correct flag. A push or a missing
// prediction leaves it unset.
func compareToPrediction(predicted *string, status prop.Status) *bool {
	if predicted == nil || *predicted == "" || status == prop.StatusPush {
		return nil
	}
	correct := *predicted == string(status)
	return &correct
}
