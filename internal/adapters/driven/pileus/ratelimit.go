package pileus

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 2.0

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter combines a token bucket with the server's Retry-After hints.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second.
// A non-positive rps uses DefaultRequestsPerSecond.
func NewRateLimiter(rps float64) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	blockedUntil := r.blockedUntil
	r.mu.Unlock()

	if wait := time.Until(blockedUntil); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// CheckRateLimit returns a RateLimitError for 429 responses and remembers
// the Retry-After deadline for later Wait calls.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAfter := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), time.Now())
	if retryAfter > 0 {
		r.mu.Lock()
		r.blockedUntil = time.Now().Add(retryAfter)
		r.mu.Unlock()
	}

	url := ""
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.String()
	}
	return &RateLimitError{RetryAfter: retryAfter, URL: url}
}

// BlockedUntil returns the Retry-After deadline, zero if none.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedUntil
}

func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
