// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny unit so tests finish quickly.
	RetryUnit = 1 * time.Millisecond
}

var errStatus = errors.New("bad status")

// statusHandler retries every non-200 response.
func statusHandler(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return Retryable(errStatus)
	}
	return nil
}

func TestDoWithRetry_ImmediateSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = DoWithRetry(context.Background(), ts.Client(), req, Options{}, statusHandler)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_RetriesThen200(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = DoWithRetry(context.Background(), ts.Client(), req, Options{}, statusHandler)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_LinearWaitsFromHeader(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set(RateLimitHeader, "1s")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var waits []time.Duration
	opts := Options{OnBackoff: func(_ int, wait time.Duration) { waits = append(waits, wait) }}
	err = DoWithRetry(context.Background(), ts.Client(), req, opts, statusHandler)

	assert.ErrorIs(t, err, errStatus)
	// 1 initial + 2 default retries = 3 total calls.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{1 * RetryUnit, 2 * RetryUnit}, waits)
}

func TestDoWithRetry_NonRetryableStops(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	errGone := errors.New("gone")
	var waits int
	opts := Options{OnBackoff: func(int, time.Duration) { waits++ }}
	err = DoWithRetry(context.Background(), ts.Client(), req, opts, func(resp *http.Response) error {
		if resp.StatusCode == http.StatusNotFound {
			return errGone
		}
		return nil
	})

	assert.ErrorIs(t, err, errGone)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Zero(t, waits)
}

func TestDoWithRetry_NegativeDisablesRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = DoWithRetry(context.Background(), ts.Client(), req, Options{MaxRetries: -1}, statusHandler)
	assert.ErrorIs(t, err, errStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(RateLimitHeader, "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	// Use a longer unit so the context cancels during the wait.
	old := RetryUnit
	RetryUnit = 500 * time.Millisecond
	defer func() { RetryUnit = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = DoWithRetry(ctx, ts.Client(), req, Options{}, statusHandler)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLinearBackoff(t *testing.T) {
	b := retry.WithMaxRetries(2, LinearBackoff(func() time.Duration { return 3 * time.Second }))

	wait, stop := b.Next()
	assert.False(t, stop)
	assert.Equal(t, 3*time.Second, wait)

	wait, stop = b.Next()
	assert.False(t, stop)
	assert.Equal(t, 6*time.Second, wait)

	_, stop = b.Next()
	assert.True(t, stop)
}

func TestRateLimitInterval(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"seconds suffix", "2s", 2 * RetryUnit},
		{"bare number", "3", 3 * RetryUnit},
		{"missing", "", RetryUnit},
		{"garbage", "soon", RetryUnit},
		{"zero", "0s", RetryUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set(RateLimitHeader, tt.value)
			}
			assert.Equal(t, tt.want, RateLimitInterval(h))
		})
	}
}
