package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/middleware"
	"github.com/yigit/psychcourse/internal/pkg/helpers"
)

// CourseController handles course operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses returns a page of courses
// @Summary List courses
// @Description Lists all courses, newest first, published or not
// @Tags admin-courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Creates a new, unpublished course. The slug is derived from the title when omitted.
// @Tags admin-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourse returns the full course tree
// @Summary Get course details
// @Description Returns a course with its ordered weeks, lessons and assets
// @Tags admin-courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// UpdateCourse applies a partial update and optional reordering
// @Summary Update a course
// @Description Updates the given course fields; absent fields stay unchanged. weekOrder and lessonOrder reorder weeks and lessons in one transaction.
// @Tags admin-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or order"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Deletes a course and its asset files. Refused while the course still has weeks.
// @Tags admin-courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course still has weeks"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully"))
}

// GetOutline returns the public outline of a published course
// @Summary Get course outline
// @Description Returns the weeks and published lessons of a published course. Scripts are not included.
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} dto.APIResponse{data=dto.CourseOutlineResponse} "Outline retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{slug} [get]
func (c *CourseController) GetOutline(ctx *gin.Context) {
	outline, err := c.courseService.GetPublishedOutline(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(outline))
}
