package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	token, expiresAt, err := svc.GenerateAccessToken("worker-1", "karim", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "worker-1", claims["worker_id"])
	assert.Equal(t, "karim", claims["username"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, "access", claims["type"])
}

func TestJWTService_GenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever")

	_, _, err := svc.GenerateAccessToken("worker-1", "karim", false)
	assert.Error(t, err)
}

func TestJWTService_SSEToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	token, expiresIn, err := svc.GenerateSSEToken("worker-9")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	workerID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "worker-9", workerID)
}

func TestJWTService_ValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")
	access, _, err := svc.GenerateAccessToken("worker-1", "karim", false)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestJWTService_ValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	other := NewJWTService("another-secret", "1h")
	token, _, err := other.GenerateSSEToken("worker-1")
	require.NoError(t, err)

	svc := NewJWTService(testSecret, "1h")
	_, err = svc.ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestJWTService_RevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", time.Now().Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("abc"))

	// stale entries are pruned when another token is revoked
	svc.RevokeToken("old", time.Now().Add(-time.Hour).Unix())
	svc.RevokeToken("new", time.Now().Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("abc"))
}
