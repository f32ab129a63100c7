package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/auth"
	"github.com/yigit/psychcourse/internal/pkg/logger"
	"github.com/yigit/psychcourse/internal/pkg/validation"
)

// AuthService handles admin authentication
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Profile(ctx context.Context, adminID int64) (*dto.AdminResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	adminRepo  repositories.IAdminUserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(adminRepo repositories.IAdminUserRepository, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login authenticates an admin by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.CompiledPatterns.Email.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding admin: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn().Str("email", email).Msg("Failed admin login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		Admin: dto.NewAdminResponse(user),
	}, nil
}

// Profile returns the admin a token was issued to
func (s *authServiceImpl) Profile(ctx context.Context, adminID int64) (*dto.AdminResponse, error) {
	if adminID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: admin %d no longer exists", apperrors.ErrTokenInvalid, adminID)
		}
		return nil, fmt.Errorf("error finding admin: %w", err)
	}

	resp := dto.NewAdminResponse(user)
	return &resp, nil
}
