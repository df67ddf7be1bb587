// Package scoring calls the external nutrition rating model.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/errors"

	"github.com/sony/gobreaker"
)

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when no scoring endpoint is set.
var ErrNotConfigured = errors.New("scoring endpoint is not configured")

type scoringResponse struct {
	Rating           float64         `json:"rating"`
	PredictedDisease json.RawMessage `json:"predicted_disease"`
}

// Client posts nutrition facts to the rating endpoint behind a circuit breaker.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewClient is the fx constructor.
func NewClient(cfg *config.Config) service.ScoringService {
	if cfg.Scoring == nil {
		return newClient("", &http.Client{Timeout: defaultTimeout})
	}

	timeout := cfg.Scoring.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return newClient(cfg.Scoring.Endpoint, &http.Client{Timeout: timeout})
}

func newClient(endpoint string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		cb:         newCircuitBreaker("scoring"),
	}
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open: allow 3 requests
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

// Score rates the nutrition facts. An open breaker fails fast with gobreaker.ErrOpenState.
func (c *Client) Score(ctx context.Context, info entity.NutritionalInfo) (*service.Score, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(info)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode nutritional info")
	}

	result, err := c.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)

			return nil, errors.Errorf("scoring endpoint returned status %d", resp.StatusCode)
		}

		var out scoringResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, errors.Wrap(err, "failed to decode scoring response")
		}

		return toScore(out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "scoring request failed")
	}

	return result.(*service.Score), nil
}

// toScore accepts predicted_disease as a single string or a list.
func toScore(out scoringResponse) (*service.Score, error) {
	score := &service.Score{Rating: out.Rating, PredictedDiseases: []string{}}

	raw := bytes.TrimSpace(out.PredictedDisease)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &score.PredictedDiseases); err != nil {
			return nil, errors.Wrap(err, "invalid predicted_disease list")
		}
	default:
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, errors.Wrap(err, "invalid predicted_disease")
		}
		if single != "" {
			score.PredictedDiseases = []string{single}
		}
	}

	return score, nil
}
