package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, exp, err := m.GenerateAccessToken("acct-1", "jane@example.com", "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestJWTSecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	refresh, _, err := m.GenerateRefreshToken("acct-1", "jane@example.com", "sess-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
}

func TestJWTExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	access, _, err := m.GenerateAccessToken("acct-1", "jane@example.com", "sess-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", h)

	h2, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h, h2, "bcrypt hashes must be salted")

	assert.True(t, CheckPassword(h, "secret1"))
	assert.False(t, CheckPassword(h, "wrong"))
}
