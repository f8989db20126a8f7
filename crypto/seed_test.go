package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeed(t *testing.T) {
	seed, hash, err := GenerateSeed()
	require.NoError(t, err)
	assert.Len(t, seed, 64)
	assert.Len(t, hash, 64)
	assert.True(t, VerifySeed(seed, hash))
	assert.False(t, VerifySeed(seed+"0", hash))

	other, _, err := GenerateSeed()
	require.NoError(t, err)
	assert.NotEqual(t, seed, other)
}
