package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/school-portal/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	token, exp, err := tm.GenerateToken("sid-1", domain.SessionRoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, domain.SessionRoleAdmin, claims.Role)
}

func TestTokenRejections(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	token, _, err := tm.GenerateToken("sid-1", domain.SessionRoleTeacher)
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", 30).ParseToken(token)
	assert.Error(t, err)

	_, err = tm.ParseToken(token + "x")
	assert.Error(t, err)

	incomplete, _, err := tm.GenerateToken("", domain.SessionRoleTeacher)
	require.NoError(t, err)
	_, err = tm.ParseToken(incomplete)
	assert.Error(t, err)
}

func TestTokenDefaultTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewTokenManager("s", 0).TTL())
}
