package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"angodata/pkg/platform/sentinel"
)

// MemoryUserStore keeps accounts in a slice ordered by id. The mutex
// covers id assignment and uniqueness checks.
type MemoryUserStore struct {
	mu    sync.RWMutex
	items []User
}

func NewMemoryUserStore(seed []User) *MemoryUserStore {
	s := &MemoryUserStore{items: make([]User, len(seed))}
	copy(s.items, seed)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s
}

func (s *MemoryUserStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.items {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user %q: %w", email, sentinel.ErrNotFound)
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.items {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user %q: %w", username, sentinel.ErrNotFound)
}

func (s *MemoryUserStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.items {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %q: %w", user.Username, sentinel.ErrConflict)
		}
	}
	var max int64
	for _, u := range s.items {
		if u.ID > max {
			max = u.ID
		}
	}
	user.ID = max + 1
	s.items = append(s.items, *user)
	return nil
}

func (s *MemoryUserStore) Update(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.items {
		if u.ID == user.ID {
			idx = i
			continue
		}
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %q: %w", user.Username, sentinel.ErrConflict)
		}
	}
	if idx < 0 {
		return fmt.Errorf("user %d: %w", user.ID, sentinel.ErrNotFound)
	}
	s.items[idx] = user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.items {
		if u.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
}
