package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	m := newTestManager()

	token, exp, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims := m.VerifyAccessToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newTestManager()

	refresh, _, err := m.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)

	// a refresh token never verifies as an access token and vice versa
	assert.Nil(t, m.VerifyAccessToken(refresh))
	assert.NotNil(t, m.VerifyRefreshToken(refresh))

	access, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, m.VerifyRefreshToken(access))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, m.VerifyAccessToken(token))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager()
	assert.Nil(t, m.VerifyAccessToken(""))
	assert.Nil(t, m.VerifyAccessToken("not.a.jwt"))
	assert.Nil(t, m.VerifyAccessToken("header.payload"))
}

func TestConsecutiveTokensDiffer(t *testing.T) {
	m := newTestManager()

	t1, _, err := m.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)
	t2, _, err := m.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestSignatureSegment(t *testing.T) {
	m := newTestManager()

	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	seg, ok := SignatureSegment(token)
	require.True(t, ok)
	parts := strings.Split(token, ".")
	assert.Equal(t, parts[2], seg)

	_, ok = SignatureSegment("only.two")
	assert.False(t, ok)
	_, ok = SignatureSegment("trailing.empty.")
	assert.False(t, ok)
}
