package predictor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dugoutlabs/prop-pipeline/internal/platform/logging"
	"github.com/dugoutlabs/prop-pipeline/internal/platform/resilience"
	"github.com/dugoutlabs/prop-pipeline/internal/usecase"
)

func sampleInput() usecase.PredictionInput {
	return usecase.PredictionInput{
		PlayerName: "Shohei Ohtani",
		Team:       "LAD",
		PropType:   "hits",
		GameDate:   "2026-07-15",
		Line:       1.5,
		Direction:  "over",
		Features: map[string]float64{
			"rolling_result_avg_7": 0.75,
			"is_home":              1,
		},
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestPredict_SendsPayloadAndDecodesAnswer(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predict" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		raw, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := sonic.Unmarshal(raw, &payload); err != nil {
			t.Errorf("decode request payload: %v", err)
		}
		if payload["player_name"] != "Shohei Ohtani" || payload["prop_type"] != "hits" {
			t.Errorf("unexpected payload: %v", payload)
		}
		if payload["prop_value"] != 1.5 || payload["over_under"] != "over" {
			t.Errorf("unexpected line fields: %v", payload)
		}

		_, _ = w.Write([]byte(`{"predicted_outcome": "win", "confidence_score": 0.81}`))
	}))

	got, err := client.Predict(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.Outcome != "win" || got.Confidence != 0.81 {
		t.Fatalf("unexpected prediction: %+v", got)
	}
}

func TestPredict_RejectsInvalidResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown outcome", `{"predicted_outcome": "maybe", "confidence_score": 0.5}`},
		{"confidence above one", `{"predicted_outcome": "win", "confidence_score": 1.4}`},
		{"missing outcome", `{"confidence_score": 0.5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))

			if _, err := client.Predict(context.Background(), sampleInput()); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestPredict_ErrorStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	if _, err := client.Predict(context.Background(), sampleInput()); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestPredict_CircuitBreakerRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.Predict(context.Background(), sampleInput()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := client.Predict(context.Background(), sampleInput())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open circuit, got %v", err)
	}
}

func TestPredict_RequiresBaseURL(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := client.Predict(context.Background(), sampleInput()); err == nil {
		t.Fatalf("expected error without base url")
	}
}
