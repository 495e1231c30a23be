// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryUnit is the duration of one rate-limit interval unit. The registry
// reports its interval in seconds. Tests override this to avoid real sleeps.
var RetryUnit = time.Second

// DefaultMaxRetries is the number of retries after the first attempt.
const DefaultMaxRetries = 2

// RateLimitHeader carries the registry's rate-limit interval hint.
const RateLimitHeader = "X-Rate-Limit-Interval"

// Options tunes DoWithRetry.
type Options struct {
	// MaxRetries bounds retries after the first attempt. Zero uses
	// DefaultMaxRetries; a negative value disables retries.
	MaxRetries int

	// OnBackoff is called before each wait with the 1-based retry number.
	OnBackoff func(retry int, wait time.Duration)
}

// Handler inspects a response. It returns nil on success, Retryable(err)
// to request another attempt, or any other error to stop immediately.
// The body is drained and closed by DoWithRetry after Handler returns.
type Handler func(resp *http.Response) error

// Retryable marks err as transient so DoWithRetry attempts the request again.
func Retryable(err error) error {
	return retry.RetryableError(err)
}

// DoWithRetry executes req and passes each response to handle. Transient
// failures are retried with a linear backoff: the wait before retry n is
// n times the interval from the last response's rate-limit header (one unit
// when absent). After exhausting retries the last handler error is returned
// unwrapped. A cancelled context aborts the wait and returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, opts Options, handle Handler) error {
	maxRetries := opts.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = DefaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}

	var mu sync.Mutex
	interval := RetryUnit
	backoff := LinearBackoff(func() time.Duration {
		mu.Lock()
		defer mu.Unlock()
		return interval
	})
	backoff = retry.WithMaxRetries(uint64(maxRetries), backoff) // #nosec G115 -- non-negative above
	if opts.OnBackoff != nil {
		bounded := backoff
		n := 0
		backoff = retry.BackoffFunc(func() (time.Duration, bool) {
			wait, stop := bounded.Next()
			if !stop {
				n++
				opts.OnBackoff(n, wait)
			}
			return wait, stop
		})
	}

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return Retryable(err)
		}
		defer func() {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()

		mu.Lock()
		interval = RateLimitInterval(resp.Header)
		mu.Unlock()

		return handle(resp)
	})
}

// LinearBackoff returns a backoff whose n-th wait is n times interval().
// It never stops on its own; bound it with retry.WithMaxRetries.
func LinearBackoff(interval func() time.Duration) retry.Backoff {
	var attempt int64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * interval(), false
	})
}

// RateLimitInterval parses the rate-limit interval header ("1s" or "1") into
// a duration expressed in RetryUnit. Missing or invalid values yield one unit.
func RateLimitInterval(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get(RateLimitHeader))
	v = strings.TrimSuffix(v, "s")
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return RetryUnit
	}
	return time.Duration(n) * RetryUnit
}
