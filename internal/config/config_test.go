package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.QRTokenTTL)
	assert.Equal(t, "memory", cfg.QRBackend)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("SECURE_COOKIES", "maybe")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
}
