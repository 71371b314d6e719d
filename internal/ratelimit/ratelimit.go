// Package ratelimit implements a fixed-window request budget keyed by
// client. The counter store is injectable so a multi-process deployment can
// swap the process-local map for Redis without changing guard logic.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Result reports the state of a client's window after one hit.
type Result struct {
	Count   int
	ResetAt time.Time
}

// CounterStore increments the fixed-window counter for key, starting a new
// window of the given length when none is active.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (Result, error)
}

// Limiter decides whether a request fits the configured budget.
type Limiter struct {
	store  CounterStore
	max    int
	window time.Duration
}

func New(store CounterStore, max int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("counter store is required")
	}
	if max <= 0 || window <= 0 {
		return nil, errors.New("max and window must be positive")
	}
	return &Limiter{store: store, max: max, window: window}, nil
}

// Allow records one request for key. When the budget is exhausted it returns
// allowed=false and how long the client should wait before retrying.
func (l *Limiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	res, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return false, 0, err
	}
	if res.Count > l.max {
		return false, time.Until(res.ResetAt), nil
	}
	return true, 0, nil
}
