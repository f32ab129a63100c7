package dto

import "github.com/yigit/psychcourse/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@psychcourse.local"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"43200"`
}

// AdminResponse represents the signed-in editor
type AdminResponse struct {
	ID          int64  `json:"id" example:"1"`
	Email       string `json:"email" example:"admin@psychcourse.local"`
	DisplayName string `json:"displayName" example:"Course Admin"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// NewAdminResponse maps an admin user to its public representation
func NewAdminResponse(u *models.AdminUser) AdminResponse {
	return AdminResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
