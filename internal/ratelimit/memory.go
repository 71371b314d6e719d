package ratelimit

import (
	"context"
	"sync"
	"time"
)

// pruneEvery bounds the cost of the opportunistic sweep: expired keys are
// collected on every Nth increment rather than by a background goroutine.
const pruneEvery = 64

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the process-local counter table. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*window
	ops     int
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, windowLen time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.ops++
	if s.ops%pruneEvery == 0 {
		for k, w := range s.entries {
			if !now.Before(w.resetAt) {
				delete(s.entries, k)
			}
		}
	}

	w, ok := s.entries[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{count: 0, resetAt: now.Add(windowLen)}
		s.entries[key] = w
	}
	w.count++
	return Result{Count: w.count, ResetAt: w.resetAt}, nil
}
