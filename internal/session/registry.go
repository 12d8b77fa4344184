package session

import (
	"sync"
	"time"
)

type registered struct {
	session  *Session
	lastUsed time.Time
}

// Registry keeps the sessions opened by remote hosts, keyed by session id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registered
	now      func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*registered),
		now:      time.Now,
	}
}

// Add registers s.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = &registered{session: s, lastUsed: r.now()}
}

// Get returns the session with id and marks it as used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.session, true
}

// Remove closes and forgets the session with id.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.session.Close()
	}
	return ok
}

// Sweep closes every session unused since before cutoff and returns how many went.
func (r *Registry) Sweep(cutoff time.Time) int {
	r.mu.Lock()
	var idle []*Session
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

// Len is the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
