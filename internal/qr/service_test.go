package qr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	ids map[int]bool
}

func (f fakeUsers) Exists(_ context.Context, id int) (bool, error) {
	return f.ids[id], nil
}

func newTestService(t *testing.T) (*Service, *MemoryStore, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	svc := NewService(fakeUsers{ids: map[int]bool{42: true, 7: true}}, store, 5*time.Minute)
	return svc, store, &now
}

func TestIssueUnknownUser(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Issue(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, store.Len(), "no token should be stored for an unknown user")
}

func TestIssueAndVerify(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Issue(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, token, 32, "16 random bytes hex-encoded")

	// Verify does not consume: repeated scans succeed until expiry.
	for i := 0; i < 3; i++ {
		userID, err := svc.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, 42, userID)
	}
}

func TestVerifyUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Verify(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, store, now := newTestService(t)
	ctx := context.Background()

	token, err := svc.Issue(ctx, 42)
	require.NoError(t, err)

	*now = now.Add(4 * time.Minute)
	userID, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	*now = now.Add(time.Minute + time.Second)
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, 0, store.Len(), "expired entry should be dropped on lookup")
}

func TestIssueSweepsExpired(t *testing.T) {
	svc, store, now := newTestService(t)
	ctx := context.Background()

	_, err := svc.Issue(ctx, 42)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	*now = now.Add(6 * time.Minute)
	fresh, err := svc.Issue(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len(), "issue should sweep the expired tokens")
	userID, err := svc.Verify(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokensAreUnique(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Issue(ctx, 42)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestDefaultTTL(t *testing.T) {
	svc := NewService(fakeUsers{}, NewMemoryStore(), 0)
	assert.Equal(t, 5*time.Minute, svc.ttl)
}
