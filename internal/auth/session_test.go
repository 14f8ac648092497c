package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", 42, time.Hour))

	userID, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSession)

	now = now.Add(time.Hour + time.Second)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 0, store.Len(), "expired session should be dropped on read")
}

func TestMemorySessionStoreSweepOnSave(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old1", 1, time.Minute))
	require.NoError(t, store.Save(ctx, "old2", 2, time.Minute))

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, "fresh", 3, time.Hour))

	assert.Equal(t, 1, store.Len(), "save should sweep expired sessions")
}

func TestManagerIssueAndResolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(NewMemorySessionStore(), time.Hour, "sams_session", false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	require.NoError(t, m.Issue(c, 42))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "sams_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	c2.Request.AddCookie(cookie)

	userID, err := m.UserID(c2)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestManagerClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewMemorySessionStore()
	m := NewManager(store, time.Hour, "sams_session", false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	require.NoError(t, m.Issue(c, 42))
	cookie := w.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	c2.Request.AddCookie(cookie)
	require.NoError(t, m.Clear(c2))
	assert.Equal(t, 0, store.Len())

	// The cleared session no longer resolves.
	w3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(w3)
	c3.Request = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	c3.Request.AddCookie(cookie)
	_, err := m.UserID(c3)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUserIDWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(NewMemorySessionStore(), time.Hour, "sams_session", false)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/user", nil)

	_, err := m.UserID(c)
	assert.ErrorIs(t, err, ErrNoSession)
}
