package shopware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate in requests per second.
	// Shopware's admin API announces no quota headers, so the client paces
	// itself instead of reacting to a remaining-requests counter.
	ProactiveRate = 3.0

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter paces admin API requests: a token bucket throttles proactively
// and a 429 response pauses all requests until the announced retry time.
type RateLimiter struct {
	bucket *rate.Limiter

	mu         sync.Mutex
	pauseUntil time.Time
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	pauseUntil := r.pauseUntil
	r.mu.Unlock()

	if time.Now().Before(pauseUntil) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(pauseUntil)):
		}
	}
	return nil
}

// UpdateFromResponse records a server-side throttle signal. Only 429
// responses carry one; everything else leaves the limiter untouched.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return
	}

	pause := time.Second
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			pause = time.Duration(seconds) * time.Second
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauseUntil = time.Now().Add(pause)
}

// PauseUntil returns the time until which requests are paused.
func (r *RateLimiter) PauseUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pauseUntil
}
