package impl

import (
	"sync"
	"time"

	"storefront/internal/domain/entity"
)

// checkoutStore holds in-progress checkout sessions keyed by identity. The
// storefront owns this state alone; it is process-local and discarded on
// restart, which matches the session's advisory nature.
type checkoutStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.CheckoutSession
}

func newCheckoutStore() *checkoutStore {
	return &checkoutStore{
		sessions: make(map[string]*entity.CheckoutSession),
	}
}

// get returns the session for the identity, or nil.
func (s *checkoutStore) get(identity entity.Identity) *entity.CheckoutSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[identity.Key()]
}

// put stores the session under its identity key, stamping UpdatedAt.
func (s *checkoutStore) put(session *entity.CheckoutSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = time.Now()
	s.sessions[session.Identity.Key()] = session
}

// drop removes the identity's session, if any.
func (s *checkoutStore) drop(identity entity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, identity.Key())
}
