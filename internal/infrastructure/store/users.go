// Package store provides the in-memory persistence layer. All state is
// process-lifetime only; each store serialises access with a single mutex,
// which is enough at this scale to make every operation exactly-once under
// concurrent duplicate requests.
package store

import (
	"sync"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// UserStore holds all user records. The insertion order of usernames is kept
// so leaderboard ties resolve deterministically.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

// NewUserStore returns an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User)}
}

// Create inserts user, failing with domain.ErrUserExists when the username is
// already taken. The stored record is a copy; the caller keeps ownership of
// its argument.
func (s *UserStore) Create(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	clone := *user
	s.users[user.Username] = &clone
	s.order = append(s.order, user.Username)
	return nil
}

// Get returns a copy of the user, or false when absent.
func (s *UserStore) Get(username string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, false
	}
	clone := *u
	return &clone, true
}

// Delete removes the user and reports whether it existed.
func (s *UserStore) Delete(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return false
	}
	delete(s.users, username)
	for i, name := range s.order {
		if name == username {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// SetRole overwrites the user's role and reports whether the user existed.
func (s *UserStore) SetRole(username, role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return false
	}
	u.Role = role
	return true
}

// SetBalance overwrites the balance and reports whether the user existed.
func (s *UserStore) SetBalance(username string, value int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return false
	}
	u.Balance = value
	return true
}

// AdjustBalance adds delta (possibly negative) to the balance and returns the
// new value. When clamp is true the result is floored at zero.
func (s *UserStore) AdjustBalance(username string, delta int64, clamp bool) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return 0, false
	}
	u.Balance += delta
	if clamp && u.Balance < 0 {
		u.Balance = 0
	}
	return u.Balance, true
}

// AttachQR stores the user's rendered personal QR code. Attaching to an
// absent user is a no-op returning false, so a render finishing after the
// user was removed leaves nothing behind.
func (s *UserStore) AttachQR(username string, png []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return false
	}
	u.QRCode = png
	return true
}

// List returns a snapshot of all users as copies, in insertion order.
func (s *UserStore) List() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.User, 0, len(s.order))
	for _, name := range s.order {
		clone := *s.users[name]
		out = append(out, &clone)
	}
	return out
}

// Len returns the number of users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
