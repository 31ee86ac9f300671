package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16-chars"

func testTokenService(t *testing.T) *TokenService {
	ts, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)
}

func TestNewTokenService_InvalidTTL(t *testing.T) {
	_, err := NewTokenService(testSecret, 0)
	assert.Error(t, err)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := testTokenService(t)

	token, err := ts.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := testTokenService(t)

	token, err := ts.IssueWithTTL(42, -time.Minute)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	ts := testTokenService(t)

	_, err := ts.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	ts := testTokenService(t)
	other, err := NewTokenService("another-secret-16-chars-long", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(42)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
