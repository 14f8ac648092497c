package httpmiddleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	l := NewSimpleTokenBucket(3, 60)

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow("10.0.0.1"), "request %d within capacity", i)
	}
	assert.False(t, l.allow("10.0.0.1"))

	// Other clients have their own bucket.
	assert.True(t, l.allow("10.0.0.2"))
}

func TestTokenBucketDefaultCapacity(t *testing.T) {
	l := NewSimpleTokenBucket(0, 2)

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
}
