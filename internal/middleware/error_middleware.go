package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// apiError pairs a sentinel with the response it produces
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: specific sentinels come before the generic ones they may wrap.
var apiErrors = []apiError{
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrWeekNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Week not found"},
	{apperrors.ErrLessonNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Lesson not found"},
	{apperrors.ErrDeckNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Lesson has no slide deck"},
	{apperrors.ErrAssetNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Asset not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrCourseSlugExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course slug already exists"},
	{apperrors.ErrLessonSlugExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Lesson slug already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrCourseHasWeeks, http.StatusConflict, dto.ErrorCodeConflict, "Course still has weeks"},
	{apperrors.ErrWeekHasLessons, http.StatusConflict, dto.ErrorCodeConflict, "Week still has lessons"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},

	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// ErrorDetailFor maps an error to its HTTP status and error detail
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}
		detail := dto.NewErrorDetail(e.code, e.message)
		// Validation errors carry their reason; other errors keep internals hidden
		if e.status == http.StatusBadRequest || e.status == http.StatusConflict {
			detail.WithDetails(err.Error())
		}
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
		return e.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
}

// ErrorMessage reduces an error to a single human-readable line
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	status, detail := ErrorDetailFor(err)
	if status == http.StatusBadRequest || status == http.StatusConflict {
		return detail.Message + ": " + err.Error()
	}
	return detail.Message
}
