package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (AuthService, *auth.JWTService) {
	t.Helper()
	m := newMemStore()
	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(t, err)
	require.NoError(t, fakeAdminRepo{m}.Create(context.Background(), &models.AdminUser{
		Email: "admin@psychcourse.local", PasswordHash: hash, DisplayName: "Admin",
	}))

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return NewAuthService(fakeAdminRepo{m}, jwtService), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "Admin@PsychCourse.local", Password: "correct-horse"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)
	assert.Equal(t, "Admin", resp.Admin.DisplayName)

	claims, err := jwtService.ValidateToken(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, claims.UserID)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@psychcourse.local", Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@psychcourse.local", Password: "correct-horse"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestProfile(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@psychcourse.local", Password: "correct-horse"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, login.Admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@psychcourse.local", profile.Email)

	_, err = svc.Profile(ctx, login.Admin.ID+100)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	_, err = svc.Profile(ctx, 0)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}
