package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	user := &User{ID: "user-1", Role: RoleAdmin}

	token, err := IssueToken(user, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	user := &User{ID: "user-1", Role: RoleUser}

	token, err := IssueToken(user, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	user := &User{ID: "user-1", Role: RoleUser}

	token, err := IssueToken(user, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("not-a-token", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
