package session

import (
	"context"
	"sync"
	"time"
)

// Role identifies who produced a conversation entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ConversationEntry is one line of the session's conversation log.
type ConversationEntry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Session is the per-visitor state: the logged-in identity and the
// conversation log. The log is append-only until explicitly cleared.
type Session struct {
	ID string

	// submit serialises translation submissions within the session.
	submit sync.Mutex

	mu           sync.Mutex
	user         string
	conversation []ConversationEntry
	lastSeen     time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, lastSeen: now}
}

// TryLock claims the session for a submission. It returns false when
// another submission is still running.
func (s *Session) TryLock() bool {
	return s.submit.TryLock()
}

// Lock blocks until the session is free for a submission.
func (s *Session) Lock() {
	s.submit.Lock()
}

// Unlock releases a claim taken with Lock or TryLock.
func (s *Session) Unlock() {
	s.submit.Unlock()
}

// User returns the logged-in identity, or "" when nobody is logged in.
func (s *Session) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser records the logged-in identity.
func (s *Session) SetUser(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Append adds entries to the end of the conversation log.
func (s *Session) Append(entries ...ConversationEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = append(s.conversation, entries...)
}

// Conversation returns a copy of the conversation log.
func (s *Session) Conversation() []ConversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ConversationEntry, len(s.conversation))
	copy(out, s.conversation)
	return out
}

// ClearConversation empties the conversation log.
func (s *Session) ClearConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
