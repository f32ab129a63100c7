package models

import "time"

// CourseAsset represents an uploaded file attached to a course and optionally a lesson.
type CourseAsset struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	LessonID  *int64    `json:"lessonId,omitempty" db:"lesson_id"` // Nullable
	FileName  string    `json:"fileName" db:"file_name"`
	FilePath  string    `json:"-" db:"file_path"`
	FileURL   string    `json:"fileUrl" db:"file_url"`
	MimeType  string    `json:"mimeType" db:"mime_type"`
	FileSize  int64     `json:"fileSize" db:"file_size"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
