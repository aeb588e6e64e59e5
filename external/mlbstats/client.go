// Package mlbstats consumes the public MLB Stats API: schedule by date, game
// box scores, and the game live feed. All three endpoints are unauthenticated
// GETs treated as unreliable.
package mlbstats

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/resilience"
	"github.com/dugoutlabs/prop-pipeline/internal/usecase"
)

const (
	defaultBaseURL   = "https://statsapi.mlb.com/api"
	defaultTimeout   = 8 * time.Second
	maxResponseBytes = 16 << 20
	sportIDMLB       = "1"
)

var errMLBTransient = crerr.New("mlb stats transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FinalGamePks lists ids of games already in Final state for a YYYY-MM-DD date.
func (c *Client) FinalGamePks(ctx context.Context, date string) ([]int64, error) {
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: schedule date is required", usecase.ErrInvalidInput)
	}

	var schedule scheduleEnvelope
	query := map[string]string{"sportId": sportIDMLB, "date": date}
	if err := c.doJSON(ctx, "/v1/schedule", query, &schedule); err != nil {
		return nil, fmt.Errorf("fetch schedule date=%s: %w", date, err)
	}

	gamePks := make([]int64, 0, 16)
	for _, d := range schedule.Dates {
		for _, game := range d.Games {
			if game.GamePk <= 0 {
				continue
			}
			if game.Status.DetailedState != "Final" {
				continue
			}
			gamePks = append(gamePks, game.GamePk)
		}
	}
	return gamePks, nil
}

// BoxscoreLines returns the normalized stat line for every player that
// appears in a game's boxscore, home and away.
func (c *Client) BoxscoreLines(ctx context.Context, gamePk int64) ([]usecase.ExternalStatLine, error) {
	if gamePk <= 0 {
		return nil, fmt.Errorf("%w: game pk must be greater than zero", usecase.ErrInvalidInput)
	}

	var boxscore boxscoreEnvelope
	path := fmt.Sprintf("/v1/game/%d/boxscore", gamePk)
	if err := c.doJSON(ctx, path, nil, &boxscore); err != nil {
		return nil, fmt.Errorf("fetch boxscore game_pk=%d: %w", gamePk, err)
	}

	homeAbbr := boxscore.Teams.Home.Team.Abbreviation
	awayAbbr := boxscore.Teams.Away.Team.Abbreviation

	lines := make([]usecase.ExternalStatLine, 0, 64)
	lines = appendTeamLines(lines, boxscore.Teams.Home, homeAbbr, awayAbbr, true)
	lines = appendTeamLines(lines, boxscore.Teams.Away, awayAbbr, homeAbbr, false)
	return lines, nil
}

// GameFeed returns the ordered play-by-play log for a game.
func (c *Client) GameFeed(ctx context.Context, gamePk int64) (usecase.ExternalGameFeed, error) {
	if gamePk <= 0 {
		return usecase.ExternalGameFeed{}, fmt.Errorf("%w: game pk must be greater than zero", usecase.ErrInvalidInput)
	}

	var feed liveFeedEnvelope
	path := fmt.Sprintf("/v1.1/game/%d/feed/live", gamePk)
	if err := c.doJSON(ctx, path, nil, &feed); err != nil {
		return usecase.ExternalGameFeed{}, fmt.Errorf("fetch live feed game_pk=%d: %w", gamePk, err)
	}

	plays := make([]usecase.ExternalFeedPlay, 0, len(feed.LiveData.Plays.AllPlays))
	for _, play := range feed.LiveData.Plays.AllPlays {
		mapped := usecase.ExternalFeedPlay{
			Event:     play.Result.Event,
			EventType: play.Result.EventType,
			RBI:       play.Result.RBI,
			BatterID:  play.Matchup.Batter.ID,
			PitcherID: play.Matchup.Pitcher.ID,
		}
		for _, runner := range play.Runners {
			mapped.Runners = append(mapped.Runners, usecase.ExternalFeedRunner{
				RunnerID:    runner.Details.Runner.ID,
				MovementEnd: runner.Movement.End,
			})
		}
		plays = append(plays, mapped)
	}

	return usecase.ExternalGameFeed{GamePk: gamePk, Plays: plays}, nil
}

func appendTeamLines(lines []usecase.ExternalStatLine, team boxscoreTeam, abbr, opponent string, isHome bool) []usecase.ExternalStatLine {
	for _, player := range team.Players {
		if player.Person.ID <= 0 || player.Stats == nil {
			continue
		}
		batting := player.Stats.Batting
		pitching := player.Stats.Pitching
		lines = append(lines, usecase.ExternalStatLine{
			PlayerID:           strconv.FormatInt(player.Person.ID, 10),
			FullName:           player.Person.FullName,
			Team:               abbr,
			Opponent:           opponent,
			IsHome:             isHome,
			Position:           player.Position.Abbreviation,
			Hits:               batting.Hits,
			Runs:               batting.Runs,
			RBIs:               batting.RBI,
			Doubles:            batting.Doubles,
			Triples:            batting.Triples,
			HomeRuns:           batting.HomeRuns,
			Walks:              batting.BaseOnBalls,
			StrikeoutsBatting:  batting.StrikeOuts,
			StolenBases:        batting.StolenBases,
			TotalBases:         batting.TotalBases,
			OutsRecorded:       reconcileOuts(pitching),
			StrikeoutsPitching: pitching.StrikeOuts,
			WalksAllowed:       pitching.BaseOnBalls,
			EarnedRuns:         pitching.EarnedRuns,
			HitsAllowed:        pitching.Hits,
		})
	}
	return lines
}

// reconcileOuts unifies the two upstream representations of pitching
// workload: a direct outs count when present, otherwise floor(IP x 3) from
// the innings-pitched string.
func reconcileOuts(pitching pitchingStats) *int {
	if pitching.Outs != nil {
		return pitching.Outs
	}
	ip := strings.TrimSpace(pitching.InningsPitched)
	if ip == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(ip, 64)
	if err != nil {
		return nil
	}
	outs := int(math.Floor(parsed * 3))
	return &outs
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "mlb stats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errMLBTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode stats payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errMLBTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errMLBTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errMLBTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "mlb stats request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
