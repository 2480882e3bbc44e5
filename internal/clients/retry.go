package clients

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig defines retry behavior for best-effort reads. Auth and
// order mutations are never retried: those stay single-shot so a slow
// backend cannot double-submit a user action.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	Jitter         float64
	RetryableCodes []int
}

// DefaultRetryConfig returns the retry policy used for degrade-safe reads.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		RetryableCodes: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Retrier runs an operation with exponential backoff and jitter,
// honouring Retry-After headers.
type Retrier struct {
	config *RetryConfig
}

// NewRetrier creates a retrier; a nil config selects the defaults.
func NewRetrier(config *RetryConfig) *Retrier {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &Retrier{config: config}
}

// shouldRetry reports whether a status/error combination is retryable.
// Network errors (statusCode 0) always are.
func (r *Retrier) shouldRetry(statusCode int, err error) bool {
	if err != nil && statusCode == 0 {
		return true
	}
	for _, code := range r.config.RetryableCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// backoff computes the wait before the given attempt; a server-provided
// Retry-After wins over the computed value.
func (r *Retrier) backoff(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}
	d := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffFactor, float64(attempt))
	if r.config.Jitter > 0 {
		d += d * r.config.Jitter * (rand.Float64()*2 - 1)
	}
	if d > float64(r.config.MaxBackoff) {
		d = float64(r.config.MaxBackoff)
	}
	return time.Duration(d)
}

// Do runs fn until it succeeds, the error becomes non-retryable or the
// attempt budget is spent. fn reports the HTTP status it saw (0 for
// transport errors) so the retrier can apply the status-code policy.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) (statusCode int, retryAfter time.Duration, err error)) error {
	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		statusCode, retryAfter, err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.shouldRetry(statusCode, err) || attempt == r.config.MaxRetries {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt, retryAfter)):
		}
	}
	return lastErr
}

// ParseRetryAfter extracts the Retry-After duration from a response,
// accepting both delta-seconds and HTTP-date forms.
func ParseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	value := resp.Header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		return time.Until(t)
	}
	return 0
}
