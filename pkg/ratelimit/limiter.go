package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Counter is the shared store behind the limiter. IncrWindow must increment
// and start the expiry atomically.
type Counter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Result describes one Allow decision
type Result struct {
	Allowed    bool
	Count      int64
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter is a fixed-window limiter keyed by client identifier. The count
// lives in the shared store so every instance sees the same window.
type Limiter struct {
	counter Counter
	prefix  string
	limit   int64
	window  time.Duration
}

// New creates a limiter allowing limit hits per window for each key
func New(counter Counter, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		counter: counter,
		prefix:  prefix,
		limit:   int64(limit),
		window:  window,
	}
}

// Allow records one hit for key
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.counter.IncrWindow(ctx, l.key(key), l.window)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit lookup failed: %w", err)
	}

	if ttl <= 0 {
		ttl = l.window
	}

	res := Result{
		Allowed:   count <= l.limit,
		Count:     count,
		Remaining: l.limit - count,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = ttl
	}
	return res, nil
}

// Limit returns the configured hits per window
func (l *Limiter) Limit() int64 {
	return l.limit
}

func (l *Limiter) key(id string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, id)
}
