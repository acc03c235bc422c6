package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chronostack/chronostack/internal/config"
)

// resultPath is the collector endpoint that accepts finished calculations.
const resultPath = "/api/chrono/async-result"

// ErrRetriesExhausted marks a delivery that failed on every attempt.
var ErrRetriesExhausted = errors.New("dispatch: retries exhausted")

// Result is a finished calculation ready for delivery.
type Result struct {
	RequestID     int
	FromYear      int
	ToYear        int
	MatchedLayers int
}

// payload is the collector wire format. The field set and names are fixed
// by the collector's API contract.
type payload struct {
	ResearchRequestID int    `json:"research_request_id"`
	ResultFromYear    int    `json:"result_from_year"`
	ResultToYear      int    `json:"result_to_year"`
	MatchedLayers     int    `json:"matched_layers"`
	AuthToken         string `json:"auth_token"`
}

// sleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case. Abstracted so tests can skip real waits.
type sleepFunc func(ctx context.Context, d time.Duration) error

// Dispatcher posts calculation results to the collector with bounded retry.
type Dispatcher struct {
	url      string
	token    func() string
	attempts int
	delay    time.Duration

	client *http.Client // injectable for tests
	sleep  sleepFunc    // injectable for tests
}

// New creates a Dispatcher from the service configuration. The auth token
// is resolved from the environment on every delivery, not captured once.
func New(cfg config.CalcConfig) *Dispatcher {
	return &Dispatcher{
		url:      strings.TrimRight(cfg.CollectorURL, "/") + resultPath,
		token:    cfg.Auth.Token,
		attempts: cfg.Dispatch.Attempts,
		delay:    cfg.Dispatch.RetryDelay,
		client:   &http.Client{Timeout: cfg.Dispatch.Timeout},
		sleep:    defaultSleep,
	}
}

// Deliver sends res to the collector, retrying failed attempts with a
// fixed delay. Any 2xx response is success. When every attempt fails the
// returned error wraps ErrRetriesExhausted together with the last failure.
func (d *Dispatcher) Deliver(ctx context.Context, res Result) error {
	body, err := json.Marshal(payload{
		ResearchRequestID: res.RequestID,
		ResultFromYear:    res.FromYear,
		ResultToYear:      res.ToYear,
		MatchedLayers:     res.MatchedLayers,
		AuthToken:         d.token(),
	})
	if err != nil {
		return fmt.Errorf("dispatch: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		lastErr = d.post(ctx, body)
		if lastErr == nil {
			slog.Info("dispatch: result delivered",
				"request_id", res.RequestID,
				"from_year", res.FromYear,
				"attempt", attempt,
			)
			return nil
		}

		slog.Warn("dispatch: attempt failed",
			"request_id", res.RequestID,
			"attempt", attempt,
			"max_attempts", d.attempts,
			"err", lastErr,
		)

		if attempt < d.attempts {
			if err := d.sleep(ctx, d.delay); err != nil {
				return fmt.Errorf("dispatch: cancelled between attempts: %w", err)
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, d.attempts, lastErr)
}

// post performs one delivery attempt.
func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
