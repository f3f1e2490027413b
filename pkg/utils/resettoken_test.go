package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	const userID = "64f1b2a3c4d5e6f708192a3b"

	token, err := NewResetToken(userID)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(token, userID))
	assert.Len(t, token, 64+len(userID))

	// The random prefix must be valid hex.
	_, err = hex.DecodeString(strings.TrimSuffix(token, userID))
	assert.NoError(t, err)

	second, err := NewResetToken(userID)
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestHashResetToken(t *testing.T) {
	digest := HashResetToken("some-secret")
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, HashResetToken("some-secret"))
	assert.NotEqual(t, digest, HashResetToken("other-secret"))
}
