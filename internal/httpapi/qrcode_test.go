package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatboigung/SmartAcademicSystem/internal/qr"
	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

type fakeQRService struct {
	issued map[int]string
	tokens map[string]int
}

func (f fakeQRService) Issue(_ context.Context, userID int) (string, error) {
	token, ok := f.issued[userID]
	if !ok {
		return "", qr.ErrUserNotFound
	}
	return token, nil
}

func (f fakeQRService) Verify(_ context.Context, token string) (int, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, qr.ErrInvalidToken
	}
	return userID, nil
}

type fakeUserGetter struct {
	users map[int]user.User
}

func (f fakeUserGetter) Get(_ context.Context, id int) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func qrTestRouter(userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := qrHandler{
		svc: fakeQRService{
			issued: map[int]string{42: "a1b2c3"},
			tokens: map[string]int{"a1b2c3": 42},
		},
		users: fakeUserGetter{users: map[int]user.User{
			42: {ID: 42, Username: "jstudent", Password: "secret-hash", FirstName: "John", LastName: "Student", Role: user.RoleStudent},
		}},
	}
	r := gin.New()
	r.GET("/api/qrcode", func(c *gin.Context) { c.Set("userID", userID) }, h.generate)
	r.POST("/api/qrcode/verify", h.verify)
	return r
}

func TestGenerateQRCode(t *testing.T) {
	r := qrTestRouter(42)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qrcode", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a1b2c3", body["token"])
}

func TestGenerateQRCodeUnknownUser(t *testing.T) {
	r := qrTestRouter(999)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qrcode", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyQRCode(t *testing.T) {
	r := qrTestRouter(42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/qrcode/verify",
		strings.NewReader(`{"token":"a1b2c3"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var u user.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, 42, u.ID)
	assert.Equal(t, "jstudent", u.Username)
	assert.NotContains(t, w.Body.String(), "secret-hash", "password must not leak")
}

func TestVerifyQRCodeInvalidToken(t *testing.T) {
	r := qrTestRouter(42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/qrcode/verify",
		strings.NewReader(`{"token":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestVerifyQRCodeMissingToken(t *testing.T) {
	r := qrTestRouter(42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/qrcode/verify", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
