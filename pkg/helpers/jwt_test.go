package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateToken("user-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "admin", claims.Role)
}

func TestJWTRejections(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	t.Run("tampered token", func(t *testing.T) {
		token, _, err := m.GenerateToken("user-1", "user")
		require.NoError(t, err)

		_, err = m.ParseToken(token + "x")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other", time.Hour)
		token, _, err := other.GenerateToken("user-1", "user")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewJWTManager("secret", -time.Second)
		token, _, err := short.GenerateToken("user-1", "user")
		require.NoError(t, err)

		_, err = short.ParseToken(token)
		require.Error(t, err)
	})

	t.Run("empty uid", func(t *testing.T) {
		token, _, err := m.GenerateToken("", "user")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		require.Error(t, err)
	})
}
