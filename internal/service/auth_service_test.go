package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/repository"
)

func newAuthFixture(t *testing.T) (AuthService, *repository.MemoryUserRepository) {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	svc := NewAuthService(userRepo, &AuthServiceConfig{
		JWTSecret:      "test_jwt_secret",
		AccessTokenTTL: time.Hour,
		BcryptCost:     4,
	})
	return svc, userRepo
}

func registerRequest() *dto.RegisterUserRequest {
	return &dto.RegisterUserRequest{
		Name:     "Dr. Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "s3cret-pass",
		Role:     string(domain.RoleAOA),
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.Equal(t, string(domain.RoleAOA), resp.User.Role)
	assert.False(t, resp.User.IsAdmin)

	// The issued token carries the identity claims the middleware reads.
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test_jwt_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID, claims["user_id"])
	assert.Equal(t, string(domain.RoleAOA), claims["role"])
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	req := registerRequest()
	req.Email = "  Asha@Example.COM "
	resp, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", resp.User.Email)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	req := registerRequest()
	req.Role = "VIP"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
