package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyScheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "storee:session:s1", sessionKey("s1"))
	assert.Equal(t, "storee:owner:u1:sessions", ownerSessionsKey("u1"))
	assert.Equal(t, "storee:memory:m1", memoryKey("m1"))
	assert.Equal(t, "storee:owner:u1:memories", ownerMemoriesKey("u1"))
}
