package utils

import (
	"testing"

	"post_service/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.GlobalConfig.JWT.Secret = "test-secret-key-0123456789abcdef-test"
	config.GlobalConfig.JWT.Expire = 1

	t.Run("Claims survive the round trip", func(t *testing.T) {
		token, err := GenerateToken("user-1", RoleAdmin)
		require.NoError(t, err)

		claims, err := ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.Equal(t, "post-service", claims.Issuer)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		_, err := ParseToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		token, err := GenerateToken("user-1", RoleUser)
		require.NoError(t, err)

		config.GlobalConfig.JWT.Secret = "another-secret-key-0123456789abcdef"
		defer func() {
			config.GlobalConfig.JWT.Secret = "test-secret-key-0123456789abcdef-test"
		}()

		_, err = ParseToken(token)
		assert.Error(t, err)
	})
}
