// Package predictor calls the externally hosted prediction model. The
// pipeline persists its answer when present and never interprets it.
package predictor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/resilience"
	"github.com/dugoutlabs/prop-pipeline/internal/usecase"
)

const (
	defaultTimeout   = 6 * time.Second
	maxResponseBytes = 1 << 20
)

var errPredictorTransient = crerr.New("predictor transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	validate       *validator.Validate
}

type predictRequest struct {
	PlayerName string             `json:"player_name"`
	Team       string             `json:"team"`
	PropType   string             `json:"prop_type"`
	GameDate   string             `json:"game_date"`
	Line       float64            `json:"prop_value"`
	Direction  string             `json:"over_under"`
	Features   map[string]float64 `json:"features"`
}

type predictResponse struct {
	PredictedOutcome string  `json:"predicted_outcome" validate:"required,oneof=win loss"`
	ConfidenceScore  float64 `json:"confidence_score" validate:"gte=0,lte=1"`
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

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		validate:       validator.New(),
	}
}

// Predict posts a feature vector plus prop metadata and returns the model's
// predicted outcome and confidence.
func (c *Client) Predict(ctx context.Context, input usecase.PredictionInput) (usecase.ExternalPrediction, error) {
	if c.baseURL == "" {
		return usecase.ExternalPrediction{}, crerr.New("predictor base url is not configured")
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "predictor circuit breaker rejected request", "state", c.breaker.State())
			return usecase.ExternalPrediction{}, fmt.Errorf("%w: prediction model is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	payload, err := sonic.Marshal(predictRequest{
		PlayerName: input.PlayerName,
		Team:       input.Team,
		PropType:   input.PropType,
		GameDate:   input.GameDate,
		Line:       input.Line,
		Direction:  input.Direction,
		Features:   input.Features,
	})
	if err != nil {
		return usecase.ExternalPrediction{}, fmt.Errorf("encode predict request: %w", err)
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	_, _ = body.Write(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body.B))
	if err != nil {
		return usecase.ExternalPrediction{}, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordOutcome(false)
		return usecase.ExternalPrediction{}, fmt.Errorf("%w: send predict request: %v", errPredictorTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.recordOutcome(false)
		return usecase.ExternalPrediction{}, fmt.Errorf("%w: read predict response: %v", errPredictorTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordOutcome(resp.StatusCode < 500)
		return usecase.ExternalPrediction{}, fmt.Errorf("predictor status=%d", resp.StatusCode)
	}
	c.recordOutcome(true)

	var decoded predictResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return usecase.ExternalPrediction{}, fmt.Errorf("decode predict response: %w", err)
	}
	if err := c.validate.Struct(decoded); err != nil {
		return usecase.ExternalPrediction{}, fmt.Errorf("invalid predict response: %w", err)
	}

	return usecase.ExternalPrediction{
		Outcome:    decoded.PredictedOutcome,
		Confidence: decoded.ConfidenceScore,
	}, nil
}

func (c *Client) recordOutcome(success bool) {
	if !c.circuitEnabled {
		return
	}
	if success {
		c.breaker.RecordSuccess()
	} else {
		c.breaker.RecordFailure()
	}
}
