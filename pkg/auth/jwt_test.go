package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escobarvape/backend/pkg/auth"
)

func TestClaimsRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000aaaa", "branch manager", "north")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "64f1c0ffee0000000000aaaa", claims.AdminID)
	assert.Equal(t, "branch manager", claims.Role)
	assert.Equal(t, "north", claims.Branch)
}

func TestOwnerHasNoBranch(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000bbbb", "owner", "")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Branch)
}

func TestExpiredToken(t *testing.T) {
	token, err := auth.GenerateTokenWithTTL("64f1c0ffee0000000000cccc", "owner", "", -time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestMalformedToken(t *testing.T) {
	_, err := auth.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000dddd", "owner", "")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token + "x")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("@escobarvape1")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "@escobarvape1"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
