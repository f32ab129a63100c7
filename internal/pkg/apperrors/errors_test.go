package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("lesson order is incomplete", map[string]interface{}{"missing": []int64{4}})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "lesson order is incomplete", err.Error())

	var custom *CustomError
	if assert.True(t, errors.As(fmt.Errorf("week 3: %w", err), &custom)) {
		assert.Equal(t, []int64{4}, custom.Details["missing"])
	}
}

func TestCustomErrorFallsBackToWrappedMessage(t *testing.T) {
	assert.Equal(t, "course not found", (&CustomError{Err: ErrCourseNotFound}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
