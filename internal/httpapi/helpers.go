package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// queryInt returns the named query parameter as an int, 0 when absent or bad.
func queryInt(c *gin.Context, name string) int {
	val := c.Query(name)
	if val == "" {
		return 0
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return parsed
}

// pathInt returns the named path parameter as an int.
func pathInt(c *gin.Context, name string) (int, bool) {
	parsed, err := strconv.Atoi(c.Param(name))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// queryTime parses an RFC 3339 or date-only query parameter.
func queryTime(c *gin.Context, name string) (time.Time, bool) {
	val := c.Query(name)
	if val == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return t, true
	}
	return time.Time{}, false
}
