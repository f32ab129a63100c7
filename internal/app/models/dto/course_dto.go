package dto

import (
	"time"

	"github.com/yigit/psychcourse/internal/app/models"
)

// --- Request DTOs ---

// CreateCourseRequest represents the data needed to create a new course.
type CreateCourseRequest struct {
	Slug           string         `json:"slug" binding:"omitempty,max=120,slug" example:"intro-to-psychology"` // Derived from title when empty
	Title          string         `json:"title" binding:"required,min=2,max=200" example:"Introduction to Psychology"`
	Subtitle       *string        `json:"subtitle" example:"Mind, brain and behaviour"`
	Description    *string        `json:"description" example:"An eight week tour of the field."`
	PriceCents     int64          `json:"priceCents" binding:"gte=0" example:"4900"`
	SalePriceCents *int64         `json:"salePriceCents" binding:"omitempty,gte=0" example:"2900"`
	Currency       string         `json:"currency" binding:"omitempty,currency" example:"USD"`
	IsPublished    bool           `json:"isPublished" example:"false"`
	Metadata       map[string]any `json:"metadata"`
}

// UpdateCourseRequest is a partial update: nil fields are left unchanged.
// WeekOrder and LessonOrder, when present, must list every week of the
// course and every lesson of the keyed week respectively.
type UpdateCourseRequest struct {
	Slug           *string           `json:"slug" binding:"omitempty,max=120,slug" example:"intro-to-psychology"`
	Title          *string           `json:"title" binding:"omitempty,min=2,max=200" example:"Introduction to Psychology"`
	Subtitle       *string           `json:"subtitle" example:"Mind, brain and behaviour"` // Empty string clears
	Description    *string           `json:"description"`                                  // Empty string clears
	PriceCents     *int64            `json:"priceCents" binding:"omitempty,gte=0" example:"4900"`
	SalePriceCents *int64            `json:"salePriceCents" binding:"omitempty,gte=0" example:"2900"`
	ClearSalePrice bool              `json:"clearSalePrice" example:"false"`
	Currency       *string           `json:"currency" binding:"omitempty,currency" example:"USD"`
	IsPublished    *bool             `json:"isPublished" example:"true"`
	Metadata       map[string]any    `json:"metadata"`
	WeekOrder      []int64           `json:"weekOrder" example:"3,1,2"`
	LessonOrder    map[int64][]int64 `json:"lessonOrder"`
}

// HasCourseFields reports whether any course column is being changed
func (r *UpdateCourseRequest) HasCourseFields() bool {
	return r.Slug != nil || r.Title != nil || r.Subtitle != nil || r.Description != nil ||
		r.PriceCents != nil || r.SalePriceCents != nil || r.ClearSalePrice ||
		r.Currency != nil || r.IsPublished != nil || r.Metadata != nil
}

// --- Response DTOs ---

// CourseSummaryResponse is a course row without its content tree
type CourseSummaryResponse struct {
	ID                  int64          `json:"id" example:"1"`
	Slug                string         `json:"slug" example:"intro-to-psychology"`
	Title               string         `json:"title" example:"Introduction to Psychology"`
	Subtitle            *string        `json:"subtitle,omitempty"`
	Description         *string        `json:"description,omitempty"`
	PriceCents          int64          `json:"priceCents" example:"4900"`
	SalePriceCents      *int64         `json:"salePriceCents,omitempty" example:"2900"`
	EffectivePriceCents int64          `json:"effectivePriceCents" example:"2900"`
	Currency            string         `json:"currency" example:"USD"`
	IsPublished         bool           `json:"isPublished" example:"true"`
	Metadata            map[string]any `json:"metadata,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// CourseDetailResponse is a course with its full week/lesson tree and assets
type CourseDetailResponse struct {
	CourseSummaryResponse
	Weeks  []WeekResponse  `json:"weeks"`
	Assets []AssetResponse `json:"assets"`
}

// FindLesson returns the lesson with the given id from the tree
func (c *CourseDetailResponse) FindLesson(id int64) (*LessonResponse, bool) {
	for wi := range c.Weeks {
		for li := range c.Weeks[wi].Lessons {
			if c.Weeks[wi].Lessons[li].ID == id {
				return &c.Weeks[wi].Lessons[li], true
			}
		}
	}
	return nil, false
}

// LessonCount returns the number of lessons across all weeks
func (c *CourseDetailResponse) LessonCount() int {
	n := 0
	for _, w := range c.Weeks {
		n += len(w.Lessons)
	}
	return n
}

// CourseListResponse represents a page of courses
type CourseListResponse struct {
	Courses    []CourseSummaryResponse `json:"courses"`
	Pagination PaginationInfo          `json:"pagination"`
}

// CourseOutlineResponse is the public table of contents of a published course
type CourseOutlineResponse struct {
	Slug                string                `json:"slug" example:"intro-to-psychology"`
	Title               string                `json:"title" example:"Introduction to Psychology"`
	Subtitle            *string               `json:"subtitle,omitempty"`
	Description         *string               `json:"description,omitempty"`
	PriceCents          int64                 `json:"priceCents" example:"4900"`
	EffectivePriceCents int64                 `json:"effectivePriceCents" example:"2900"`
	Currency            string                `json:"currency" example:"USD"`
	Weeks               []OutlineWeekResponse `json:"weeks"`
}

// OutlineWeekResponse is a week in a public outline
type OutlineWeekResponse struct {
	Position int                     `json:"position" example:"1"`
	Title    string                  `json:"title" example:"What is psychology?"`
	Summary  *string                 `json:"summary,omitempty"`
	Lessons  []OutlineLessonResponse `json:"lessons"`
}

// OutlineLessonResponse is a published lesson in a public outline; scripts are never exposed
type OutlineLessonResponse struct {
	Slug                 string  `json:"slug" example:"what-is-psychology"`
	Title                string  `json:"title" example:"What is psychology?"`
	Summary              *string `json:"summary,omitempty"`
	VideoDurationSeconds *int    `json:"videoDurationSeconds,omitempty" example:"540"`
	IsFreePreview        bool    `json:"isFreePreview" example:"true"`
	HasSlides            bool    `json:"hasSlides" example:"true"`
}

// NewCourseSummaryResponse maps a course row
func NewCourseSummaryResponse(c *models.Course) CourseSummaryResponse {
	return CourseSummaryResponse{
		ID:                  c.ID,
		Slug:                c.Slug,
		Title:               c.Title,
		Subtitle:            c.Subtitle,
		Description:         c.Description,
		PriceCents:          c.PriceCents,
		SalePriceCents:      c.SalePriceCents,
		EffectivePriceCents: c.EffectivePriceCents(),
		Currency:            c.Currency,
		IsPublished:         c.IsPublished,
		Metadata:            c.Metadata,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// NewCourseDetailResponse maps a course together with its populated tree
func NewCourseDetailResponse(c *models.Course) *CourseDetailResponse {
	resp := &CourseDetailResponse{
		CourseSummaryResponse: NewCourseSummaryResponse(c),
		Weeks:                 make([]WeekResponse, 0, len(c.Weeks)),
		Assets:                make([]AssetResponse, 0, len(c.Assets)),
	}
	for _, w := range c.Weeks {
		resp.Weeks = append(resp.Weeks, NewWeekResponse(w))
	}
	for _, a := range c.Assets {
		resp.Assets = append(resp.Assets, NewAssetResponse(a))
	}
	return resp
}

// NewCourseOutlineResponse maps a course to its public outline, keeping published lessons only
func NewCourseOutlineResponse(c *models.Course) *CourseOutlineResponse {
	resp := &CourseOutlineResponse{
		Slug:                c.Slug,
		Title:               c.Title,
		Subtitle:            c.Subtitle,
		Description:         c.Description,
		PriceCents:          c.PriceCents,
		EffectivePriceCents: c.EffectivePriceCents(),
		Currency:            c.Currency,
		Weeks:               make([]OutlineWeekResponse, 0, len(c.Weeks)),
	}
	for _, w := range c.Weeks {
		week := OutlineWeekResponse{
			Position: w.Position,
			Title:    w.Title,
			Summary:  w.Summary,
			Lessons:  make([]OutlineLessonResponse, 0, len(w.Lessons)),
		}
		for _, l := range w.Lessons {
			if !l.IsPublished {
				continue
			}
			week.Lessons = append(week.Lessons, OutlineLessonResponse{
				Slug:                 l.Slug,
				Title:                l.Title,
				Summary:              l.Summary,
				VideoDurationSeconds: l.VideoDurationSeconds,
				IsFreePreview:        l.IsFreePreview,
				HasSlides:            l.HasSlides(),
			})
		}
		resp.Weeks = append(resp.Weeks, week)
	}
	return resp
}
