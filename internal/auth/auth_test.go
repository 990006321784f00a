package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/auth"
)

const testSecret = "test-secret-test-secret-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, "user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseToken(t *testing.T) {
	t.Run("rejects token signed with another secret", func(t *testing.T) {
		token, err := auth.GenerateToken("some-other-secret", "user-123", time.Hour)
		require.NoError(t, err)

		_, err = auth.ParseToken(testSecret, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := auth.GenerateToken(testSecret, "user-123", -time.Minute)
		require.NoError(t, err)

		_, err = auth.ParseToken(testSecret, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := auth.ParseToken(testSecret, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects token without subject", func(t *testing.T) {
		token, err := auth.GenerateToken(testSecret, "", time.Hour)
		require.NoError(t, err)

		_, err = auth.ParseToken(testSecret, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
