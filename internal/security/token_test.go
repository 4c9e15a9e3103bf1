package security_test

import (
	"testing"
	"time"

	"collectrent/internal/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters"

func TestTokenRoundTrip(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)
	accountID := uuid.New()

	token, err := manager.GenerateAccessToken(accountID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "collectrent", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := security.NewTokenManager(testSecret, -time.Minute)
	token, err := manager.GenerateAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)
	token, err := manager.GenerateAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	other := security.NewTokenManager("another-secret-key-32-characters-long", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)
	_, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
