package models

import (
	"encoding/json"
	"time"
)

// CourseLesson is a single lesson; it belongs to exactly one week.
type CourseLesson struct {
	ID                   int64           `json:"id" db:"id"`
	WeekID               int64           `json:"weekId" db:"week_id"`
	Position             int             `json:"position" db:"position"`
	Slug                 string          `json:"slug" db:"slug"`
	Title                string          `json:"title" db:"title"`
	Summary              *string         `json:"summary,omitempty" db:"summary"`
	VideoURL             *string         `json:"videoUrl,omitempty" db:"video_url"`
	VideoDurationSeconds *int            `json:"videoDurationSeconds,omitempty" db:"video_duration_seconds"`
	Script               *string         `json:"script,omitempty" db:"script"` // markdown
	Slides               json.RawMessage `json:"slides,omitempty" db:"slides"` // deck JSON, nullable
	IsPublished          bool            `json:"isPublished" db:"is_published"`
	IsFreePreview        bool            `json:"isFreePreview" db:"is_free_preview"`
	CreatedAt            time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time       `json:"updatedAt" db:"updated_at"`
}

// HasSlides reports whether the lesson carries its own deck.
func (l *CourseLesson) HasSlides() bool {
	return len(l.Slides) > 0 && string(l.Slides) != "null"
}
