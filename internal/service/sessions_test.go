package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	tok, err := s.Issue("123", "bob", "abc")
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "123", claims.UserID())
	assert.Equal(t, "bob", claims.Username)
}

func TestSessionRejectsTamperedAndExpired(t *testing.T) {
	s := NewTokenService("secret", time.Hour)
	tok, err := s.Issue("123", "bob", "")
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = s.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestOAuthState(t *testing.T) {
	secret := []byte("secret")
	now := time.Now()

	state := NewOAuthState(secret, now)
	assert.True(t, ValidateOAuthState(state, secret, now.Add(time.Minute)))
	assert.False(t, ValidateOAuthState(state, secret, now.Add(11*time.Minute)), "stale")
	assert.False(t, ValidateOAuthState(state, []byte("other"), now))
	assert.False(t, ValidateOAuthState(state+"00", secret, now))
	assert.False(t, ValidateOAuthState("garbage", secret, now))
}
