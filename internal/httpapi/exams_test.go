package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	eligible bool
	err      error
}

func (f fakeChecker) CheckEligibility(context.Context, int, int) (bool, error) {
	return f.eligible, f.err
}

func eligibilityTestRouter(checker eligibilityChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := examHandler{checker: checker}
	r := gin.New()
	r.POST("/api/eligibility/check", h.checkEligibility)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCheckEligibilityEndpoint(t *testing.T) {
	for _, eligible := range []bool{true, false} {
		r := eligibilityTestRouter(fakeChecker{eligible: eligible})
		w := postJSON(r, "/api/eligibility/check", `{"studentId":1,"examId":5}`)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]bool
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, eligible, body["eligible"])
	}
}

func TestCheckEligibilityEndpointMissingFields(t *testing.T) {
	r := eligibilityTestRouter(fakeChecker{eligible: true})

	for _, body := range []string{`{}`, `{"studentId":1}`, `{"examId":5}`, `not json`} {
		w := postJSON(r, "/api/eligibility/check", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestCheckEligibilityEndpointServiceError(t *testing.T) {
	r := eligibilityTestRouter(fakeChecker{err: errors.New("db down")})

	w := postJSON(r, "/api/eligibility/check", `{"studentId":1,"examId":5}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
