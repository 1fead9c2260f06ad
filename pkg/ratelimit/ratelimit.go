package ratelimit

import (
	"context"
	"time"
)

type implLimiter struct {
	interval time.Duration
	last     time.Time
}

// New creates a fixed-interval Limiter: Wait blocks until at least
// interval has elapsed since the previous call returned. Not safe for
// concurrent use; the pipeline issues calls from a single goroutine.
func New(interval time.Duration) Limiter {
	return &implLimiter{interval: interval}
}

// Wait blocks until the next call slot opens or the context is done.
// The first call never blocks.
func (l *implLimiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return ctx.Err()
	}

	next := l.last.Add(l.interval)
	now := time.Now()
	if l.last.IsZero() || !now.Before(next) {
		l.last = now
		return nil
	}

	timer := time.NewTimer(next.Sub(now))
	defer timer.Stop()

	select {
	case <-timer.C:
		l.last = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
