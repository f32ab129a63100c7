package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseSlugExists    = errors.New("course with this slug already exists")
	ErrCourseHasWeeks      = errors.New("course has weeks and cannot be deleted")
	ErrInvalidLessonOrder  = errors.New("invalid lesson order")
	ErrInvalidWeekOrder    = errors.New("invalid week order")
	ErrCourseNotPublished  = errors.New("course is not published")
	ErrInvalidCoursePrices = errors.New("invalid course prices")
)

// Week errors
var (
	ErrWeekNotFound   = errors.New("week not found")
	ErrWeekHasLessons = errors.New("week has lessons and cannot be deleted")
)

// Lesson errors
var (
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrLessonSlugExists   = errors.New("lesson with this slug already exists")
	ErrLessonNotPublished = errors.New("lesson is not published")
	ErrInvalidSlides      = errors.New("invalid slide deck")
	ErrDeckNotFound       = errors.New("lesson has no slide deck")
)

// Asset errors
var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrFileRequired  = errors.New("file is required")
)

// NewValidationError creates a validation error carrying field-level details
func NewValidationError(message string, details map[string]interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: details,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
