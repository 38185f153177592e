package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("plain-text", "plain-text"))
}

func TestCheckPasswordAcceptsPHPPrefix(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	php := "$2y$" + hash[4:]
	assert.True(t, CheckPassword(php, "secret"))
}
