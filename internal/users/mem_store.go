package users

import (
	"context"
	"sync"
	"time"
)

// MemStore is the in-memory credential store used when no DSN is
// configured and in tests.
type MemStore struct {
	mu     sync.Mutex
	nextID uint64
	byName map[string]User
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1, byName: make(map[string]User)}
}

func (s *MemStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (s *MemStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[u.Username]; ok {
		return ErrUsernameTaken
	}
	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.byName[u.Username] = *u
	return nil
}
