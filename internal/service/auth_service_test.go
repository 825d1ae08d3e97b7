package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginAndValidate(t *testing.T) {
	svc := NewAuthService()

	resp, err := svc.Login("admin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.AdminID, "admin_")

	claims, err := svc.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserTokenRoundTrip(t *testing.T) {
	svc := NewAuthService()

	token, err := svc.GenerateUserToken("user_abc123")
	require.NoError(t, err)

	claims, err := svc.ValidateUserToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc123", claims.UserID)
}

func TestValidateRejectsGarbageTokens(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.ValidateAdminToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateUserToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
