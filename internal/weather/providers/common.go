package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/balloon-playback/internal/common"
)

// errMalformed marks a response that decoded but lacks the wind fields.
var errMalformed = errors.New("malformed wind response")

// maxResponseBytes caps a provider response body.
const maxResponseBytes = 1 << 20

// Breaker thresholds. One hour of markers is a batch of lookups against the
// same provider, so the breaker only opens once the provider is failing
// across many positions, not after a run of bad coordinates.
const (
	breakerMinRequests  = 50
	breakerFailureRatio = 0.9
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerFailureRatio
		},
		IsSuccessful: breakerSuccess,
	})
}

// breakerSuccess reports whether err says nothing about provider health.
// Client errors belong to the position asked for, and cancellation to the
// caller.
func breakerSuccess(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, common.ErrUnexpected):
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}

// Lookups are one call per position, so failed lookups are not retried.
func defaultHTTPConfig(client *http.Client) common.HTTPClientConfig {
	return common.HTTPClientConfig{
		Client: client,
		Backoff: common.BackoffConfig{
			MaxRetries:      0,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
	}
}

// getJSON performs a GET through the breaker and decodes the body into out.
func getJSON(
	ctx context.Context,
	cfg common.HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	url string,
	out interface{},
) error {
	resp, err := common.DoRequest(ctx, cfg, cb, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}
