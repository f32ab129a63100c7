package dto

import (
	"time"

	"github.com/yigit/psychcourse/internal/app/models"
)

// CreateWeekRequest represents a new week appended to a course
type CreateWeekRequest struct {
	Title   string  `json:"title" binding:"required,min=2,max=200" example:"Week 1: Foundations"`
	Summary *string `json:"summary" example:"History and methods of the field."`
}

// UpdateWeekRequest is a partial update of a week
type UpdateWeekRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=2,max=200" example:"Week 1: Foundations"`
	Summary *string `json:"summary"` // Empty string clears
}

// WeekResponse represents a week and its ordered lessons
type WeekResponse struct {
	ID        int64            `json:"id" example:"3"`
	CourseID  int64            `json:"courseId" example:"1"`
	Position  int              `json:"position" example:"1"`
	Title     string           `json:"title" example:"Week 1: Foundations"`
	Summary   *string          `json:"summary,omitempty"`
	Lessons   []LessonResponse `json:"lessons"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewWeekResponse maps a week with its populated lessons
func NewWeekResponse(w *models.CourseWeek) WeekResponse {
	resp := WeekResponse{
		ID:        w.ID,
		CourseID:  w.CourseID,
		Position:  w.Position,
		Title:     w.Title,
		Summary:   w.Summary,
		Lessons:   make([]LessonResponse, 0, len(w.Lessons)),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	for _, l := range w.Lessons {
		resp.Lessons = append(resp.Lessons, NewLessonResponse(l))
	}
	return resp
}
