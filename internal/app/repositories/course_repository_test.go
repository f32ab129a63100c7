package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models"
)

func TestBuildCourseUpdate(t *testing.T) {
	repo := &CourseRepository{sb: newStatementBuilder()}
	sale := int64(1900)

	sql, args, err := repo.buildCourseUpdate(&models.Course{
		ID:             7,
		Slug:           "intro",
		Title:          "Intro",
		PriceCents:     2900,
		SalePriceCents: &sale,
		Currency:       "USD",
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE courses SET ")
	assert.Contains(t, sql, "updated_at = NOW()")
	assert.Contains(t, sql, "WHERE id = $")
	assert.Contains(t, sql, "RETURNING updated_at")
	// nil metadata is written as an empty object
	assert.Contains(t, args, map[string]any{})
	assert.Contains(t, args, int64(7))
}

func TestBuildLessonUpdate(t *testing.T) {
	repo := &LessonRepository{sb: newStatementBuilder()}

	lesson := &models.CourseLesson{
		ID:       3,
		WeekID:   2,
		Position: 4,
		Slug:     "sleep",
		Title:    "Sleep",
		Slides:   []byte("null"),
	}

	sql, args, err := repo.buildLessonUpdate(lesson, false)
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE course_lessons SET ")
	assert.Contains(t, sql, "slides = $")
	assert.Contains(t, sql, "RETURNING week_id, position, updated_at")
	assert.Contains(t, args, nil)
	assert.Contains(t, args, int64(3))
}

func TestBuildLessonUpdateLeavesPositionAloneUnlessMoving(t *testing.T) {
	repo := &LessonRepository{sb: newStatementBuilder()}
	lesson := &models.CourseLesson{ID: 3, WeekID: 9, Position: 4, Slug: "sleep", Title: "Sleep"}

	sql, args, err := repo.buildLessonUpdate(lesson, false)
	require.NoError(t, err)
	assert.NotContains(t, sql, "week_id = $")
	assert.NotContains(t, sql, "position = $")
	assert.NotContains(t, args, int64(9))
	assert.NotContains(t, args, 4)

	sql, args, err = repo.buildLessonUpdate(lesson, true)
	require.NoError(t, err)
	assert.Contains(t, sql, "week_id = $")
	assert.Contains(t, sql, "position = $")
	assert.Contains(t, args, int64(9))
	assert.Contains(t, args, 4)
}

func TestMapLessonWriteErrorPassesThroughUnknown(t *testing.T) {
	assert.Nil(t, mapLessonWriteError(assert.AnError))
}
