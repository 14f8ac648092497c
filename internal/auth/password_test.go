package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, CheckPassword("password", hash))
	assert.False(t, CheckPassword("Password", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("password", "not-a-bcrypt-hash"))
}
