// Package memory provides map-backed store implementations. They keep the
// HTTP layer testable without a database and double as the storage backend
// when no Postgres DSN is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crestline.dev/internal/cms"
)

// UserStore is an in-memory cms.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]cms.User
	now   func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]cms.User), now: time.Now}
}

func (s *UserStore) Create(_ context.Context, u *cms.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return cms.ErrConflict
		}
	}
	now := s.now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Find(_ context.Context, id string) (*cms.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, cms.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*cms.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, cms.ErrNotFound
}

func (s *UserStore) List(_ context.Context) ([]*cms.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*cms.User, 0, len(s.users))
	for _, u := range s.users {
		copied := u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *UserStore) Update(_ context.Context, u *cms.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return cms.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return cms.ErrConflict
		}
	}
	u.UpdatedAt = s.now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return cms.ErrNotFound
	}
	delete(s.users, id)
	return nil
}
