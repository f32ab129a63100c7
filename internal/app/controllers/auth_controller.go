// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/middleware"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// AuthController handles admin authentication
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login handles admin login
// @Summary Admin login
// @Description Authenticates an admin with email and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("adminID", resp.Admin.ID).Msg("Admin logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetProfile returns the signed-in admin
// @Summary Current admin
// @Description Returns the admin the bearer token was issued to
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminResponse} "Admin profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/auth/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	resp, err := c.authService.Profile(ctx.Request.Context(), ctx.GetInt64(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
