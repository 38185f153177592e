package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("secret", 17, 2, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, int64(17), claims.UserID)
	assert.Equal(t, 2, claims.RoleID)
}

func TestParseTokenRejects(t *testing.T) {
	tok, err := GenerateToken("secret", 17, 1, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken("secret", 17, 1, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
