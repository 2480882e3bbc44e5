package clients

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
		RetryableCodes: DefaultRetryConfig().RetryableCodes,
	}
}

func TestRetrierRetriesRetryableStatus(t *testing.T) {
	retrier := NewRetrier(fastRetryConfig(2))

	calls := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) (int, time.Duration, error) {
		calls++
		if calls < 3 {
			return http.StatusServiceUnavailable, 0, errors.New("unavailable")
		}
		return http.StatusOK, 0, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrierDoesNotRetryClientErrors(t *testing.T) {
	retrier := NewRetrier(fastRetryConfig(3))

	calls := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) (int, time.Duration, error) {
		calls++
		return http.StatusBadRequest, 0, errors.New("bad request")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrierRetriesTransportErrors(t *testing.T) {
	retrier := NewRetrier(fastRetryConfig(1))

	calls := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) (int, time.Duration, error) {
		calls++
		return 0, 0, errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetrierStopsWhenBudgetSpent(t *testing.T) {
	retrier := NewRetrier(fastRetryConfig(2))

	calls := 0
	lastErr := errors.New("still broken")
	err := retrier.Do(context.Background(), func(ctx context.Context) (int, time.Duration, error) {
		calls++
		return http.StatusInternalServerError, 0, lastErr
	})

	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, calls)
}

func TestRetrierHonoursContextCancellation(t *testing.T) {
	retrier := NewRetrier(&RetryConfig{
		MaxRetries:     5,
		InitialBackoff: time.Second,
		MaxBackoff:     time.Second,
		BackoffFactor:  1.0,
		RetryableCodes: []int{http.StatusServiceUnavailable},
	})

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := retrier.Do(ctx, func(ctx context.Context) (int, time.Duration, error) {
		calls++
		return http.StatusServiceUnavailable, 0, errors.New("unavailable")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestParseRetryAfterSeconds(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "5")
	assert.Equal(t, 5*time.Second, ParseRetryAfter(resp))

	resp.Header.Set("Retry-After", "garbage")
	assert.Equal(t, time.Duration(0), ParseRetryAfter(resp))

	assert.Equal(t, time.Duration(0), ParseRetryAfter(nil))
}
