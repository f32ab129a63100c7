package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/middleware"
)

// LessonController handles lesson operations
type LessonController struct {
	lessonService services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// CreateLesson appends a lesson to a week
// @Summary Create a lesson
// @Description Appends a new lesson at the end of the week. A slides payload is validated before it is stored.
// @Tags admin-lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weekId path int true "Week ID" Format(int64) minimum(1)
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or slides"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Week not found"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/weeks/{weekId}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	weekID, ok := parseIDParam(ctx, "weekId", "week")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.CreateLesson(ctx.Request.Context(), weekID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lesson))
}

// GetLesson returns a lesson
// @Summary Get a lesson
// @Description Returns a lesson including its script and stored slides
// @Tags admin-lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "lesson")
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// UpdateLesson applies a partial update, optionally moving the lesson
// @Summary Update a lesson
// @Description Updates the given fields; absent fields stay unchanged. weekId moves the lesson to the end of another week of the same course; "slides": null clears the stored deck.
// @Tags admin-lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Param request body dto.UpdateLessonRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or slides"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lesson or week not found"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/lessons/{id} [patch]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "lesson")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// DeleteLesson deletes a lesson
// @Summary Delete a lesson
// @Description Deletes a lesson and closes the gap in its week's order
// @Tags admin-lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Lesson deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "lesson")
	if !ok {
		return
	}

	if err := c.lessonService.DeleteLesson(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Lesson deleted successfully"))
}
