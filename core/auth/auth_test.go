package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("my-password")
	require.NoError(t, err)
	require.NotEqual(t, "my-password", hash)

	require.True(t, VerifyPassword("my-password", hash))
	require.False(t, VerifyPassword("wrong-password", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("unit-test-secret", 1)

	token, err := GenerateToken(42, "alice")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "sonicstream", claims.Issuer)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	InitJWT("unit-test-secret", 1)

	token, err := GenerateToken(42, "alice")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	require.Error(t, err)

	// 换密钥后旧token失效
	InitJWT("rotated-secret", 1)
	_, err = ParseToken(token)
	require.Error(t, err)
}
