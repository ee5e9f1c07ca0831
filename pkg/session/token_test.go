package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	manager := NewManager("test-secret", 30)

	token, err := manager.Issue("session-123", "ar")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", claims.SessionID)
	assert.Equal(t, "ar", claims.Locale)
}

func TestValidateRejectsTampering(t *testing.T) {
	manager := NewManager("test-secret", 30)

	token, err := manager.Issue("session-123", "en")
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		other := NewManager("other-secret", 30)
		_, err := other.Validate(token)
		assert.Error(t, err)
	})

	t.Run("mangled token", func(t *testing.T) {
		_, err := manager.Validate(token + "x")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := manager.Validate("not-a-token")
		assert.Error(t, err)
	})
}
