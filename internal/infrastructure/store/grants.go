package store

import (
	"sync"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// GrantStore holds all outstanding coin grants keyed by token. A grant and
// its rendered image live in the same record, so removing the grant removes
// the image with it.
type GrantStore struct {
	mu     sync.RWMutex
	grants map[string]*domain.Grant
	order  []string
}

// NewGrantStore returns an empty GrantStore.
func NewGrantStore() *GrantStore {
	return &GrantStore{grants: make(map[string]*domain.Grant)}
}

// Put inserts the grant. Token collisions fail with domain.ErrInvalidToken;
// the pool retries with a fresh token.
func (s *GrantStore) Put(grant *domain.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.grants[grant.Token]; exists {
		return domain.ErrInvalidToken
	}
	clone := *grant
	s.grants[grant.Token] = &clone
	s.order = append(s.order, grant.Token)
	return nil
}

// Get returns a copy of the grant, or false when absent.
func (s *GrantStore) Get(token string) (*domain.Grant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[token]
	if !ok {
		return nil, false
	}
	clone := *g
	return &clone, true
}

// Remove deletes the grant and returns it. Exactly one of any set of
// concurrent callers for the same token observes ok == true; everyone else
// sees the entry already gone.
func (s *GrantStore) Remove(token string) (*domain.Grant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.grants[token]
	if !ok {
		return nil, false
	}
	delete(s.grants, token)
	for i, t := range s.order {
		if t == token {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return g, true
}

// AttachImage stores the rendered QR code on the grant. Attaching to an
// absent grant (already redeemed) is a no-op returning false, so no reader
// ever observes an image without a pool entry.
func (s *GrantStore) AttachImage(token string, png []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.grants[token]
	if !ok {
		return false
	}
	g.Image = png
	return true
}

// List returns a snapshot of all grants as copies, in mint order.
func (s *GrantStore) List() []*domain.Grant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Grant, 0, len(s.order))
	for _, token := range s.order {
		clone := *s.grants[token]
		out = append(out, &clone)
	}
	return out
}

// Len returns the number of outstanding grants.
func (s *GrantStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.grants)
}
