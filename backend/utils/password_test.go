package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, salt, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Len(t, salt, saltLength)
	require.Len(t, hash, hashKeyLength)

	assert.True(t, VerifyPassword("correct horse battery staple", hash, salt))
	assert.False(t, VerifyPassword("correct horse battery stapl", hash, salt))
	assert.False(t, VerifyPassword("", hash, salt))
}

func TestHashPasswordSaltIsFresh(t *testing.T) {
	hash1, salt1, err := HashPassword("password")
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)

	// Each hash still verifies against its own salt.
	assert.True(t, VerifyPassword("password", hash1, salt1))
	assert.True(t, VerifyPassword("password", hash2, salt2))
	assert.False(t, VerifyPassword("password", hash1, salt2))
}
