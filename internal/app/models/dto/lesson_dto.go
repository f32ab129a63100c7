package dto

import (
	"encoding/json"
	"time"

	"github.com/yigit/psychcourse/internal/app/models"
)

// CreateLessonRequest represents a new lesson appended to a week
type CreateLessonRequest struct {
	Slug                 string          `json:"slug" binding:"omitempty,max=120,slug" example:"what-is-psychology"` // Derived from title when empty
	Title                string          `json:"title" binding:"required,min=2,max=200" example:"What is psychology?"`
	Summary              *string         `json:"summary"`
	VideoURL             *string         `json:"videoUrl" binding:"omitempty,url" example:"https://cdn.example.com/v/1.mp4"`
	VideoDurationSeconds *int            `json:"videoDurationSeconds" binding:"omitempty,gte=0" example:"540"`
	Script               *string         `json:"script" example:"# Welcome"`
	Slides               json.RawMessage `json:"slides" swaggertype:"array,object"`
	IsPublished          bool            `json:"isPublished"`
	IsFreePreview        bool            `json:"isFreePreview"`
}

// UpdateLessonRequest is a partial update of a lesson. A WeekID different
// from the current week moves the lesson to the end of that week. Slides set
// to JSON null removes the lesson's own deck.
type UpdateLessonRequest struct {
	WeekID               *int64          `json:"weekId" binding:"omitempty,gt=0" example:"4"`
	Slug                 *string         `json:"slug" binding:"omitempty,max=120,slug" example:"what-is-psychology"`
	Title                *string         `json:"title" binding:"omitempty,min=2,max=200" example:"What is psychology?"`
	Summary              *string         `json:"summary"`  // Empty string clears
	VideoURL             *string         `json:"videoUrl"` // Empty string clears
	VideoDurationSeconds *int            `json:"videoDurationSeconds" binding:"omitempty,gte=0" example:"540"`
	Script               *string         `json:"script"`
	Slides               json.RawMessage `json:"slides" swaggertype:"array,object"`
	IsPublished          *bool           `json:"isPublished"`
	IsFreePreview        *bool           `json:"isFreePreview"`
}

// LessonResponse represents a lesson as seen by the editor
type LessonResponse struct {
	ID                   int64           `json:"id" example:"12"`
	WeekID               int64           `json:"weekId" example:"3"`
	Position             int             `json:"position" example:"2"`
	Slug                 string          `json:"slug" example:"what-is-psychology"`
	Title                string          `json:"title" example:"What is psychology?"`
	Summary              *string         `json:"summary,omitempty"`
	VideoURL             *string         `json:"videoUrl,omitempty"`
	VideoDurationSeconds *int            `json:"videoDurationSeconds,omitempty"`
	Script               *string         `json:"script,omitempty"`
	Slides               json.RawMessage `json:"slides,omitempty" swaggertype:"array,object"`
	IsPublished          bool            `json:"isPublished"`
	IsFreePreview        bool            `json:"isFreePreview"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// NewLessonResponse maps a lesson
func NewLessonResponse(l *models.CourseLesson) LessonResponse {
	return LessonResponse{
		ID:                   l.ID,
		WeekID:               l.WeekID,
		Position:             l.Position,
		Slug:                 l.Slug,
		Title:                l.Title,
		Summary:              l.Summary,
		VideoURL:             l.VideoURL,
		VideoDurationSeconds: l.VideoDurationSeconds,
		Script:               l.Script,
		Slides:               l.Slides,
		IsPublished:          l.IsPublished,
		IsFreePreview:        l.IsFreePreview,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}
