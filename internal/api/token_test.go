package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestPeekToken(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	iat := time.Now().Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-42",
		"exp": exp.Unix(),
		"iat": iat.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)

	claims, err := PeekToken(signed)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.Subject)
	require.True(t, claims.ExpiresAt.Equal(exp))
	require.True(t, claims.IssuedAt.Equal(iat))
}

func TestPeekTokenGarbage(t *testing.T) {
	_, err := PeekToken("not-a-jwt")
	require.Error(t, err)
}
