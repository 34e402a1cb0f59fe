// Package session keeps one delivery ledger per client session in memory.
package session

import (
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session owns a ledger. All ledger access goes through With, which holds the
// session lock, so one session sees at most one writer at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	ledger *domain.SessionLedger

	// Unix nanos; read without mu so a long With never stalls Sweep.
	lastUsed atomic.Int64
	now      func() time.Time
}

// With runs fn with exclusive access to the session ledger.
func (s *Session) With(fn func(l *domain.SessionLedger) error) error {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ledger)
}

func (s *Session) touch() { s.lastUsed.Store(s.now().UnixNano()) }

func (s *Session) idleSince() time.Time { return time.Unix(0, s.lastUsed.Load()) }

// Registry maps session ids to sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a session with an empty ledger.
func (r *Registry) Create() *Session {
	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ledger:    domain.NewSessionLedger(),
		now:       r.now,
	}
	s.lastUsed.Store(now.UnixNano())

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	obs.SetActiveSessions(n)
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete ends a session and discards its ledger.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	obs.SetActiveSessions(n)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions unused for longer than maxIdle and returns how many
// were removed. A session whose With is in progress was touched on entry and
// is not swept, and Sweep never waits for it.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		obs.SetActiveSessions(n)
	}
	return removed
}
