package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"crestline.dev/internal/cms"
)

// LeadStore is an in-memory cms.LeadStore.
type LeadStore struct {
	mu    sync.RWMutex
	leads map[string]cms.Lead
	now   func() time.Time
}

func NewLeadStore() *LeadStore {
	return &LeadStore{leads: make(map[string]cms.Lead), now: time.Now}
}

func (s *LeadStore) Create(_ context.Context, l *cms.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.CreatedAt = s.now().UTC()
	s.leads[l.ID] = *l
	return nil
}

func (s *LeadStore) Find(_ context.Context, id string) (*cms.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leads[id]
	if !ok {
		return nil, cms.ErrNotFound
	}
	copied := l
	return &copied, nil
}

func (s *LeadStore) List(_ context.Context, f cms.LeadFilter) ([]*cms.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*cms.Lead
	for _, l := range s.leads {
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.ProjectID != nil && l.ProjectID != *f.ProjectID {
			continue
		}
		copied := l
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (s *LeadStore) Update(_ context.Context, l *cms.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[l.ID]; !ok {
		return cms.ErrNotFound
	}
	s.leads[l.ID] = *l
	return nil
}

// CareerStore is an in-memory cms.CareerStore.
type CareerStore struct {
	mu   sync.RWMutex
	jobs map[string]cms.JobOpening
	now  func() time.Time
}

func NewCareerStore() *CareerStore {
	return &CareerStore{jobs: make(map[string]cms.JobOpening), now: time.Now}
}

func (s *CareerStore) Create(_ context.Context, j *cms.JobOpening) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	s.jobs[j.ID] = *j
	return nil
}

func (s *CareerStore) Find(_ context.Context, id string) (*cms.JobOpening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, cms.ErrNotFound
	}
	copied := j
	return &copied, nil
}

func (s *CareerStore) List(_ context.Context, openOnly bool) ([]*cms.JobOpening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*cms.JobOpening
	for _, j := range s.jobs {
		if openOnly && !j.Open {
			continue
		}
		copied := j
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *CareerStore) Update(_ context.Context, j *cms.JobOpening) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; !ok {
		return cms.ErrNotFound
	}
	j.UpdatedAt = s.now().UTC()
	s.jobs[j.ID] = *j
	return nil
}

func (s *CareerStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return cms.ErrNotFound
	}
	delete(s.jobs, id)
	return nil
}
