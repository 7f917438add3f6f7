package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
)

const DefaultTTL = 30 * time.Minute

// Store holds in-progress booking workflows keyed by an opaque session
// id the browser carries between steps. Entries expire after TTL of
// inactivity; expired ones are pruned lazily on access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	mu        sync.Mutex
	wf        *domain.Workflow
	expiresAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create(gw domain.Gateway) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	s.sessions[id] = &entry{
		wf:        domain.NewWorkflow(gw),
		expiresAt: s.now().Add(s.ttl),
	}
	return id
}

// Do runs fn against the session's workflow while holding its lock.
// Workflows are not safe for concurrent use on their own.
func (s *Store) Do(id string, fn func(*domain.Workflow) error) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok && s.now().After(e.expiresAt) {
		delete(s.sessions, id)
		ok = false
	}
	if ok {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Unlock()

	if !ok {
		return httperr.ErrBusinessMsg(httperr.CodeNotFound, "unknown or expired session")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.wf)
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// caller must hold s.mu
func (s *Store) prune() {
	now := s.now()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
