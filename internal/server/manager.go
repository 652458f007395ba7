package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/coursebuddy/internal/session"
)

// SessionFactory creates a new assistant session focused on courseID.
type SessionFactory func(courseID string) *session.Session

type managed struct {
	sess     *session.Session
	lastSeen time.Time
	streams  int
}

// Manager owns the live assistant sessions, keyed by session ID. Sessions
// with no open stream and no request for longer than the TTL are closed by
// Sweep.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managed
	create   SessionFactory
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a Manager that builds sessions with create. A zero ttl
// keeps sessions until they are deleted.
func NewManager(create SessionFactory, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*managed),
		create:   create,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session and registers it.
func (m *Manager) Create(courseID string) *session.Session {
	s := m.create(courseID)
	m.mu.Lock()
	m.sessions[s.ID()] = &managed{sess: s, lastSeen: m.now()}
	m.mu.Unlock()
	return s
}

// Get returns the session, or nil if it does not exist, and counts as
// activity.
func (m *Manager) Get(id string) *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = m.now()
	return e.sess
}

// Attach marks a stream open on the session until the returned func is
// called. Attached sessions are never swept.
func (m *Manager) Attach(id string) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return func() {}
	}
	e.streams++
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			e.streams--
			e.lastSeen = m.now()
		})
	}
}

// Delete closes and forgets the session. It reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		e.sess.Close()
	}
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions that have been detached and quiet for longer than
// the TTL. It returns how many were closed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*session.Session
	for id, e := range m.sessions {
		if e.streams == 0 && e.lastSeen.Before(cutoff) {
			expired = append(expired, e.sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		slog.Debug("Closing expired session", "session_id", s.ID())
		s.Close()
	}
	return len(expired)
}

// Run sweeps periodically until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	if m.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(max(m.ttl/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Info("Closed expired sessions", "count", n, "remaining", m.Len())
			}
		}
	}
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*managed)
	m.mu.Unlock()
	for _, e := range all {
		e.sess.Close()
	}
}
