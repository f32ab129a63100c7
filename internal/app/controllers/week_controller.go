package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/middleware"
)

// WeekController handles course week operations
type WeekController struct {
	weekService services.WeekService
}

// NewWeekController creates a new WeekController
func NewWeekController(weekService services.WeekService) *WeekController {
	return &WeekController{weekService: weekService}
}

// CreateWeek appends a week to a course
// @Summary Create a week
// @Description Appends a new week at the end of the course
// @Tags admin-weeks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CreateWeekRequest true "Week information"
// @Success 201 {object} dto.APIResponse{data=dto.WeekResponse} "Week created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{id}/weeks [post]
func (c *WeekController) CreateWeek(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	var req dto.CreateWeekRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	week, err := c.weekService.CreateWeek(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(week))
}

// UpdateWeek updates a week
// @Summary Update a week
// @Description Updates the title or summary of a week; absent fields stay unchanged
// @Tags admin-weeks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weekId path int true "Week ID" Format(int64) minimum(1)
// @Param request body dto.UpdateWeekRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.WeekResponse} "Week updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Week not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/weeks/{weekId} [patch]
func (c *WeekController) UpdateWeek(ctx *gin.Context) {
	weekID, ok := parseIDParam(ctx, "weekId", "week")
	if !ok {
		return
	}

	var req dto.UpdateWeekRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	week, err := c.weekService.UpdateWeek(ctx.Request.Context(), weekID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(week))
}

// DeleteWeek deletes an empty week
// @Summary Delete a week
// @Description Deletes a week that has no lessons and closes the gap in the course order
// @Tags admin-weeks
// @Produce json
// @Security BearerAuth
// @Param weekId path int true "Week ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Week deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid week ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Week not found"
// @Failure 409 {object} dto.ErrorResponse "Week still has lessons"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/weeks/{weekId} [delete]
func (c *WeekController) DeleteWeek(ctx *gin.Context) {
	weekID, ok := parseIDParam(ctx, "weekId", "week")
	if !ok {
		return
	}

	if err := c.weekService.DeleteWeek(ctx.Request.Context(), weekID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Week deleted successfully"))
}
