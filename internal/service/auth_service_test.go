package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpro/internal/model"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "test-secret")

	registered, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.NotEmpty(t, registered.AccountID)

	claims, err := svc.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.AccountID, claims.AccountID)

	loggedIn, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "owner@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.AccountID, loggedIn.AccountID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "test-secret")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "owner@example.com",
		Password: "correct",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "correct"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "test-secret")

	_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "owner@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Email: "owner@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "test-secret")
	other := NewAuthService(newStubAccountRepo(), "different-secret")

	registered, err := other.Register(context.Background(), model.RegisterRequest{Email: "o@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(registered.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
