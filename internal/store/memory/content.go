package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"crestline.dev/internal/cms"
)

// ProjectStore is an in-memory cms.ProjectStore.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]cms.Project
	now      func() time.Time
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]cms.Project), now: time.Now}
}

func (s *ProjectStore) Create(_ context.Context, p *cms.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.projects {
		if existing.Slug == p.Slug {
			return cms.ErrConflict
		}
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = *p
	return nil
}

func (s *ProjectStore) Find(_ context.Context, id string) (*cms.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, cms.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *ProjectStore) List(_ context.Context, f cms.ProjectFilter) ([]*cms.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*cms.Project
	for _, p := range s.projects {
		if f.PublishedOnly && !p.Published {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		copied := p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (s *ProjectStore) Update(_ context.Context, p *cms.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return cms.ErrNotFound
	}
	p.UpdatedAt = s.now().UTC()
	s.projects[p.ID] = *p
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return cms.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// BlogStore is an in-memory cms.BlogStore.
type BlogStore struct {
	mu    sync.RWMutex
	posts map[string]cms.BlogPost
	now   func() time.Time
}

func NewBlogStore() *BlogStore {
	return &BlogStore{posts: make(map[string]cms.BlogPost), now: time.Now}
}

func (s *BlogStore) Create(_ context.Context, p *cms.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.posts {
		if existing.Slug == p.Slug {
			return cms.ErrConflict
		}
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.posts[p.ID] = *p
	return nil
}

func (s *BlogStore) Find(_ context.Context, id string) (*cms.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, cms.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *BlogStore) List(_ context.Context, f cms.BlogFilter) ([]*cms.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*cms.BlogPost
	for _, p := range s.posts {
		if f.PublishedOnly && !p.Published {
			continue
		}
		if f.Tag != nil && !slices.Contains(p.Tags, *f.Tag) {
			continue
		}
		copied := p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (s *BlogStore) Update(_ context.Context, p *cms.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; !ok {
		return cms.ErrNotFound
	}
	p.UpdatedAt = s.now().UTC()
	s.posts[p.ID] = *p
	return nil
}

func (s *BlogStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return cms.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
