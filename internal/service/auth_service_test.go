package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tripstack/internal/config"
	"tripstack/internal/domain"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "tripstack-test",
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Profile)
			assert.Equal(t, "new@example.com", p.Email)
			assert.Equal(t, domain.TierFree, p.SubscriptionTier)
			assert.NotEqual(t, "secret-password", p.PasswordHash)
		}).
		Return(nil)

	profile, pair, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "new@example.com",
		Password: "secret-password",
		FullName: "New User",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

	_, _, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "taken@example.com",
		Password: "secret-password",
		FullName: "Someone",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	profile := &domain.Profile{
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(profile, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "correct-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	profile := &domain.Profile{
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(profile, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ghost@example.com",
		Password: "does-not-matter",
	})

	// Unknown email is indistinguishable from a bad password
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	profile := &domain.Profile{
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
		IsAdmin:      true,
	}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(profile, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	profile := &domain.Profile{
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(profile, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	// A refresh token must not pass access-token validation
	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	profile := &domain.Profile{
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(profile, nil)
	userRepo.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestAuthService_RefreshToken_GarbageToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
