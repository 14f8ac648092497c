package qr

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTokenNotFound is returned for tokens that are absent or expired. Stores
// never distinguish the two cases.
var ErrTokenNotFound = errors.New("token not found")

// Store holds live QR tokens. The memory implementation serves a single
// instance; the Redis implementation lets several instances verify each
// other's tokens.
type Store interface {
	Save(ctx context.Context, token string, userID int, ttl time.Duration) error
	// Get resolves a token to its user id, or ErrTokenNotFound when the
	// token is unknown or expired. Stale entries are dropped on the way.
	Get(ctx context.Context, token string) (int, error)
	Delete(ctx context.Context, token string) error
	// Sweep drops expired entries. TTL-native backends make this a no-op.
	Sweep(ctx context.Context)
}

type tokenEntry struct {
	userID    int
	expiresAt time.Time
}

// MemoryStore keeps tokens in a mutex-guarded map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]tokenEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]tokenEntry), now: time.Now}
}

// Save stores a token for the given lifetime.
func (s *MemoryStore) Save(_ context.Context, token string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = tokenEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get resolves a token, deleting it if expired.
func (s *MemoryStore) Get(_ context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return 0, ErrTokenNotFound
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.entries, token)
		return 0, ErrTokenNotFound
	}
	return e.userID, nil
}

// Delete removes a token.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// Sweep drops every expired entry.
func (s *MemoryStore) Sweep(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for token, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, token)
		}
	}
}

// Len reports the number of stored tokens, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
