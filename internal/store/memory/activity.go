package memory

import (
	"context"
	"sync"

	"crestline.dev/internal/activity"
)

// ActivityStore is an in-memory activity.Store. Entries are append-only.
type ActivityStore struct {
	mu      sync.RWMutex
	entries []*activity.Entry
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

func (s *ActivityStore) Insert(_ context.Context, e *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *e
	s.entries = append(s.entries, &copied)
	return nil
}

// List returns entries newest first.
func (s *ActivityStore) List(_ context.Context, limit, offset int) ([]*activity.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*activity.Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		copied := *s.entries[i]
		out = append(out, &copied)
	}
	return paginate(out, limit, offset), nil
}
