package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/middleware"
)

// AssetController handles course file uploads
type AssetController struct {
	assetService services.AssetService
}

// NewAssetController creates a new AssetController
func NewAssetController(assetService services.AssetService) *AssetController {
	return &AssetController{assetService: assetService}
}

// ListAssets lists the files of a course
// @Summary List course assets
// @Description Lists every file uploaded to a course
// @Tags admin-assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.AssetListResponse} "Assets retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{id}/assets [get]
func (c *AssetController) ListAssets(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	assets, err := c.assetService.ListAssets(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assets))
}

// UploadAsset stores a file for a course
// @Summary Upload a course asset
// @Description Uploads a file to a course, optionally attached to one of its lessons
// @Tags admin-assets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param file formData file true "File to upload"
// @Param lessonId formData int false "Lesson the file belongs to"
// @Success 201 {object} dto.APIResponse{data=dto.AssetResponse} "Asset uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course or lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{id}/assets [post]
func (c *AssetController) UploadAsset(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid or missing file").WithField("file")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var lessonID *int64
	if raw := strings.TrimSpace(ctx.PostForm("lessonId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lesson ID").WithField("lessonId")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		lessonID = &id
	}

	asset, err := c.assetService.UploadAsset(ctx.Request.Context(), courseID, lessonID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(asset))
}

// DeleteAsset removes a file and its record
// @Summary Delete a course asset
// @Description Deletes the stored file and its record
// @Tags admin-assets
// @Produce json
// @Security BearerAuth
// @Param assetId path int true "Asset ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Asset deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid asset ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Asset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/assets/{assetId} [delete]
func (c *AssetController) DeleteAsset(ctx *gin.Context) {
	assetID, ok := parseIDParam(ctx, "assetId", "asset")
	if !ok {
		return
	}

	if err := c.assetService.DeleteAsset(ctx.Request.Context(), assetID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Asset deleted successfully"))
}
