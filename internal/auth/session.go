package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("session not found")

// SessionStore persists the mapping from session id to user id.
// The Redis implementation lets multiple instances share logins; the
// memory implementation is for dev and tests.
type SessionStore interface {
	Save(ctx context.Context, id string, userID int, ttl time.Duration) error
	Get(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues and resolves cookie-backed sessions.
type Manager struct {
	store      SessionStore
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewManager creates a session manager.
func NewManager(store SessionStore, ttl time.Duration, cookieName string, secure bool) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cookieName == "" {
		cookieName = "sams_session"
	}
	return &Manager{store: store, ttl: ttl, cookieName: cookieName, secure: secure}
}

// Issue creates a session for the user and sets the cookie on the response.
func (m *Manager) Issue(c *gin.Context, userID int) error {
	id := uuid.NewString()
	if err := m.store.Save(c.Request.Context(), id, userID, m.ttl); err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, id, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// UserID resolves the request's session cookie to a user id.
func (m *Manager) UserID(c *gin.Context) (int, error) {
	id, err := c.Cookie(m.cookieName)
	if err != nil {
		return 0, ErrNoSession
	}
	return m.store.Get(c.Request.Context(), id)
}

// Clear deletes the session and expires the cookie.
func (m *Manager) Clear(c *gin.Context) error {
	id, err := c.Cookie(m.cookieName)
	if err != nil {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	return m.store.Delete(c.Request.Context(), id)
}

type memEntry struct {
	userID    int
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Expired entries are
// dropped lazily on read and on save.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memEntry), now: time.Now}
}

// Save stores a session and sweeps expired entries.
func (s *MemorySessionStore) Save(_ context.Context, id string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = memEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

// Get resolves a session id, deleting it if expired.
func (s *MemorySessionStore) Get(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return 0, ErrNoSession
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.entries, id)
		return 0, ErrNoSession
	}
	return e.userID, nil
}

// Delete removes a session.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len reports the number of stored sessions, expired or not.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
