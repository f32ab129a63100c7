package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/filestorage"
	"github.com/yigit/psychcourse/internal/pkg/helpers"
	"github.com/yigit/psychcourse/internal/pkg/logger"
	"github.com/yigit/psychcourse/internal/pkg/validation"
)

// CourseService defines the interface for course operations
type CourseService interface {
	ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseDetailResponse, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseDetailResponse, error)
	DeleteCourse(ctx context.Context, id int64) error
	GetPublishedOutline(ctx context.Context, slug string) (*dto.CourseOutlineResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	tree       *treeLoader
	storage    filestorage.FileStorage
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	weekRepo repositories.IWeekRepository,
	lessonRepo repositories.ILessonRepository,
	assetRepo repositories.IAssetRepository,
	storage filestorage.FileStorage,
) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		tree:       &treeLoader{weekRepo: weekRepo, lessonRepo: lessonRepo, assetRepo: assetRepo},
		storage:    storage,
	}
}

// validateCourse checks a course row before it is written
func validateCourse(course *models.Course) error {
	if !validation.IsTitle(course.Title) {
		return fmt.Errorf("%w: title must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.TitleMinLength, validation.TitleMaxLength)
	}
	if !validation.IsSlug(course.Slug) {
		return fmt.Errorf("%w: slug must be lower-case words joined by hyphens", apperrors.ErrValidationFailed)
	}
	if !validation.IsCurrency(course.Currency) {
		return fmt.Errorf("%w: currency must be a 3-letter ISO code", apperrors.ErrValidationFailed)
	}
	if course.PriceCents < 0 {
		return fmt.Errorf("%w: %w: price cannot be negative", apperrors.ErrValidationFailed, apperrors.ErrInvalidCoursePrices)
	}
	if course.SalePriceCents != nil && (*course.SalePriceCents < 0 || *course.SalePriceCents >= course.PriceCents) {
		return fmt.Errorf("%w: %w: sale price must be below the list price", apperrors.ErrValidationFailed, apperrors.ErrInvalidCoursePrices)
	}
	return nil
}

// optionalText trims a nullable text field; empty means NULL
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ListCourses returns one page of courses
func (s *courseServiceImpl) ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, total, err := s.courseRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	resp := &dto.CourseListResponse{
		Courses:    make([]dto.CourseSummaryResponse, 0, len(courses)),
		Pagination: helpers.NewPaginationInfo(total, page, int(limit)),
	}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, dto.NewCourseSummaryResponse(c))
	}
	return resp, nil
}

// CreateCourse creates a new course with an empty content tree
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error) {
	course := &models.Course{
		Slug:           strings.TrimSpace(req.Slug),
		Title:          strings.TrimSpace(req.Title),
		Subtitle:       optionalText(req.Subtitle),
		Description:    optionalText(req.Description),
		PriceCents:     req.PriceCents,
		SalePriceCents: req.SalePriceCents,
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		IsPublished:    req.IsPublished,
		Metadata:       req.Metadata,
	}
	if course.Slug == "" {
		course.Slug = validation.Slugify(course.Title)
	}
	if course.Currency == "" {
		course.Currency = models.DefaultCurrency
	}
	if course.Metadata == nil {
		course.Metadata = map[string]any{}
	}

	if err := validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("courseID", course.ID).Str("slug", course.Slug).Msg("Course created")
	return dto.NewCourseDetailResponse(course), nil
}

// GetCourse returns a course with its full tree
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseDetailResponse(course), nil
}

func (s *courseServiceImpl) loadCourse(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	if err := s.tree.load(ctx, course, true); err != nil {
		return nil, err
	}
	return course, nil
}

// applyCourseUpdate copies the present request fields onto the course
func applyCourseUpdate(course *models.Course, req *dto.UpdateCourseRequest) {
	if req.Slug != nil {
		course.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		course.Subtitle = optionalText(req.Subtitle)
	}
	if req.Description != nil {
		course.Description = optionalText(req.Description)
	}
	if req.PriceCents != nil {
		course.PriceCents = *req.PriceCents
	}
	if req.ClearSalePrice {
		course.SalePriceCents = nil
	} else if req.SalePriceCents != nil {
		sale := *req.SalePriceCents
		course.SalePriceCents = &sale
	}
	if req.Currency != nil {
		course.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
	if req.Metadata != nil {
		course.Metadata = req.Metadata
	}
}

// UpdateCourse applies a partial update plus optional week/lesson reordering
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseDetailResponse, error) {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed *models.Course
	if req.HasCourseFields() {
		applyCourseUpdate(course, req)
		if err := validateCourse(course); err != nil {
			return nil, err
		}
		changed = course
	}

	weekChanges, err := planWeekOrder(course, req.WeekOrder)
	if err != nil {
		return nil, err
	}
	lessonChanges, err := planLessonOrder(course, req.LessonOrder)
	if err != nil {
		return nil, err
	}

	if changed == nil && len(weekChanges) == 0 && len(lessonChanges) == 0 {
		return dto.NewCourseDetailResponse(course), nil
	}

	if err := s.courseRepo.Save(ctx, changed, weekChanges, lessonChanges); err != nil {
		return nil, fmt.Errorf("error saving course: %w", err)
	}

	logger.Info().
		Int64("courseID", id).
		Bool("fieldsChanged", changed != nil).
		Int("weekMoves", len(weekChanges)).
		Int("lessonMoves", len(lessonChanges)).
		Msg("Course saved")

	return s.GetCourse(ctx, id)
}

// DeleteCourse deletes an empty course and its uploaded files
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	assets, err := s.tree.assetRepo.ListByCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("error listing course assets: %w", err)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	// Records are gone with the course; files are removed best-effort
	for _, a := range assets {
		if err := s.storage.DeleteFile(a.FilePath); err != nil {
			logger.Warn().Err(err).Int64("assetID", a.ID).Str("path", a.FilePath).Msg("Failed to remove asset file of deleted course")
		}
	}
	return nil
}

// GetPublishedOutline returns the public outline; unpublished courses are reported as not found
func (s *courseServiceImpl) GetPublishedOutline(ctx context.Context, slug string) (*dto.CourseOutlineResponse, error) {
	course, err := s.courseRepo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	if !course.IsPublished {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCourseNotFound, apperrors.ErrCourseNotPublished)
	}
	if err := s.tree.load(ctx, course, false); err != nil {
		return nil, err
	}
	return dto.NewCourseOutlineResponse(course), nil
}

// treeLoader populates a course's weeks, lessons and assets
type treeLoader struct {
	weekRepo   repositories.IWeekRepository
	lessonRepo repositories.ILessonRepository
	assetRepo  repositories.IAssetRepository
}

func (t *treeLoader) load(ctx context.Context, course *models.Course, withAssets bool) error {
	weeks, err := t.weekRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("error loading course weeks: %w", err)
	}
	lessons, err := t.lessonRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("error loading course lessons: %w", err)
	}
	if err := assembleTree(course, weeks, lessons); err != nil {
		return err
	}

	if withAssets {
		assets, err := t.assetRepo.ListByCourse(ctx, course.ID)
		if err != nil {
			return fmt.Errorf("error loading course assets: %w", err)
		}
		course.Assets = assets
	}
	return nil
}

// assembleTree attaches lessons to their weeks; inputs must already be position-ordered
func assembleTree(course *models.Course, weeks []*models.CourseWeek, lessons []*models.CourseLesson) error {
	byID := make(map[int64]*models.CourseWeek, len(weeks))
	for _, w := range weeks {
		w.Lessons = []*models.CourseLesson{}
		byID[w.ID] = w
	}
	for _, l := range lessons {
		w, ok := byID[l.WeekID]
		if !ok {
			return errors.New("lesson references a week outside its course")
		}
		w.Lessons = append(w.Lessons, l)
	}
	course.Weeks = weeks
	return nil
}
