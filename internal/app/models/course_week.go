package models

import "time"

// CourseWeek groups lessons of a course; ordered by Position within the course.
type CourseWeek struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Position  int       `json:"position" db:"position"`
	Title     string    `json:"title" db:"title"`
	Summary   *string   `json:"summary,omitempty" db:"summary"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Lessons []*CourseLesson `json:"lessons,omitempty"`
}
