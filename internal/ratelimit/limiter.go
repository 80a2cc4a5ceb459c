// Package ratelimit provides a token-bucket limiter for outbound exchange
// calls. Exchanges ban API keys that exceed their published limits, so the
// limiter sits in front of every adapter request when enabled.
package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter wraps a global token bucket and tracks usage counters.
type RateLimiter struct {
	limiter  *rate.Limiter
	requests int
	period   time.Duration
	metrics  metrics
}

type metrics struct {
	total   atomic.Int64
	allowed atomic.Int64
	denied  atomic.Int64
}

// New creates a RateLimiter allowing the given number of requests per period.
func New(requests int, period time.Duration) *RateLimiter {
	rps := float64(requests) / period.Seconds()
	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(rps), requests),
		requests: requests,
		period:   period,
	}
}

// Wait blocks until the limiter allows a request or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.metrics.total.Add(1)
	if err := r.limiter.Wait(ctx); err != nil {
		r.metrics.denied.Add(1)
		return err
	}
	r.metrics.allowed.Add(1)
	return nil
}

// Allow reports whether a request is permitted immediately.
func (r *RateLimiter) Allow() bool {
	r.metrics.total.Add(1)
	allowed := r.limiter.Allow()
	if allowed {
		r.metrics.allowed.Add(1)
	} else {
		r.metrics.denied.Add(1)
	}
	return allowed
}

// SetLimit updates the limit to the given requests per period.
func (r *RateLimiter) SetLimit(requests int, period time.Duration) {
	r.requests = requests
	r.period = period
	r.limiter.SetLimit(rate.Limit(float64(requests) / period.Seconds()))
}

// MetricsSnapshot is a point-in-time capture of limiter statistics.
type MetricsSnapshot struct {
	// TotalRequests is the number of rate limit checks performed.
	TotalRequests int64
	// AllowedRequests is the number of requests that were allowed.
	AllowedRequests int64
	// DeniedRequests is the number of requests that were denied.
	DeniedRequests int64
}

// Metrics returns a snapshot of the current counters.
func (r *RateLimiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:   r.metrics.total.Load(),
		AllowedRequests: r.metrics.allowed.Load(),
		DeniedRequests:  r.metrics.denied.Load(),
	}
}
