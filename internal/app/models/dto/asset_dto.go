package dto

import (
	"time"

	"github.com/yigit/psychcourse/internal/app/models"
)

// AssetResponse represents an uploaded course file
type AssetResponse struct {
	ID        int64     `json:"id" example:"7"`
	CourseID  int64     `json:"courseId" example:"1"`
	LessonID  *int64    `json:"lessonId,omitempty" example:"12"`
	FileName  string    `json:"fileName" example:"week1-handout.pdf"`
	FileURL   string    `json:"fileUrl" example:"http://localhost:8080/uploads/courses/1/ab12.pdf"`
	MimeType  string    `json:"mimeType" example:"application/pdf"`
	FileSize  int64     `json:"fileSize" example:"1048576"`
	CreatedAt time.Time `json:"createdAt"`
}

// AssetListResponse lists the assets of a course
type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// NewAssetResponse maps an asset
func NewAssetResponse(a *models.CourseAsset) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		CourseID:  a.CourseID,
		LessonID:  a.LessonID,
		FileName:  a.FileName,
		FileURL:   a.FileURL,
		MimeType:  a.MimeType,
		FileSize:  a.FileSize,
		CreatedAt: a.CreatedAt,
	}
}
