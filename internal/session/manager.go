package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "rojak_session"

// Manager owns all live sessions keyed by ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewManager creates a Manager. Sessions idle for longer than idleTTL are
// removed by Sweep; idleTTL <= 0 keeps sessions forever.
func NewManager(idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the session with id and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

// Create starts a new session with a random ID.
func (m *Manager) Create() *Session {
	s := newSession(uuid.New().String(), m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// GetOrCreate returns the session with id, or a new one if id is unknown.
// created reports whether a new session was started.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s, false
		}
	}
	return m.Create(), true
}

// Rotate replaces old with a session under a fresh ID, carrying over the
// conversation log. old is ended. The user is not carried over.
func (m *Manager) Rotate(old *Session) *Session {
	s := newSession(uuid.New().String(), m.now())
	s.conversation = old.Conversation()

	m.mu.Lock()
	delete(m.sessions, old.ID)
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Delete ends the session with id.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes idle sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if m.idleTTL <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Default().DebugContext(ctx, "removed idle sessions", "count", n)
			}
		}
	}
}

// SetCookie points the client at s.
func SetCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
