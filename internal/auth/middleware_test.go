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

type fakeDirectory struct {
	roles map[int]string
}

func (f fakeDirectory) Role(_ context.Context, userID int) (string, error) {
	role, ok := f.roles[userID]
	if !ok {
		return "", ErrNoSession
	}
	return role, nil
}

func middlewareTestRouter(t *testing.T, dir Directory) (*gin.Engine, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := NewManager(NewMemorySessionStore(), time.Hour, "sams_session", false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	require.NoError(t, m.Issue(c, 42))
	cookie := w.Result().Cookies()[0]

	r := gin.New()
	authed := r.Group("/", RequireAuth(m))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})
	authed.GET("/staff", RequireRole(dir, "admin", "lecturer"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, cookie
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, cookie := middlewareTestRouter(t, fakeDirectory{})

	w := get(r, "/me", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", nil).Code)

	bad := &http.Cookie{Name: "sams_session", Value: "not-a-session"}
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", bad).Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"lecturer", http.StatusOK},
		{"student", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			r, cookie := middlewareTestRouter(t, fakeDirectory{roles: map[int]string{42: tt.role}})
			assert.Equal(t, tt.want, get(r, "/staff", cookie).Code)
		})
	}
}

func TestRequireRoleUnknownUser(t *testing.T) {
	// A session for a user the directory cannot resolve is rejected.
	r, cookie := middlewareTestRouter(t, fakeDirectory{roles: map[int]string{}})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/staff", cookie).Code)
}
