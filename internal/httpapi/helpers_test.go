package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryCtx(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestQueryInt(t *testing.T) {
	assert.Equal(t, 7, queryInt(queryCtx("courseId=7"), "courseId"))
	assert.Equal(t, 0, queryInt(queryCtx(""), "courseId"))
	assert.Equal(t, 0, queryInt(queryCtx("courseId=abc"), "courseId"))
}

func TestQueryTime(t *testing.T) {
	got, ok := queryTime(queryCtx("from=2025-03-10T09:00:00Z"), "from")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), got)

	got, ok = queryTime(queryCtx("from=2025-03-10"), "from")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	_, ok = queryTime(queryCtx("from=yesterday"), "from")
	assert.False(t, ok)

	_, ok = queryTime(queryCtx(""), "from")
	assert.False(t, ok)
}
