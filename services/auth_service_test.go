package services

import (
	"context"
	"testing"

	"intershop/config"
	"intershop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authFixture() (*AuthService, *mockUserStore) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}
	users := newMockUserStore()
	return NewAuthService(users), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := authFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "caffeine!1",
		FullName: "Test Buyer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "customer", registered.User.Role)

	logged, err := svc.Login(ctx, models.LoginRequest{
		Email:    "buyer@example.com",
		Password: "caffeine!1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)
	assert.Equal(t, registered.User.ID, logged.User.ID)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc, _ := authFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "buyer@example.com", Password: "caffeine!1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "buyer@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "buyer@example.com", Password: "caffeine!1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "buyer@example.com", Password: "decaf"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := authFixture()

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
