package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-senha")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-senha", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-senha"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
}
