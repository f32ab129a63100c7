package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/logger"
	"github.com/yigit/psychcourse/internal/pkg/slides"
	"github.com/yigit/psychcourse/internal/pkg/validation"
)

// LessonService defines the interface for lesson operations
type LessonService interface {
	CreateLesson(ctx context.Context, weekID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetLesson(ctx context.Context, id int64) (*dto.LessonResponse, error)
	UpdateLesson(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, id int64) error
}

// lessonServiceImpl implements LessonService
type lessonServiceImpl struct {
	weekRepo   repositories.IWeekRepository
	lessonRepo repositories.ILessonRepository
}

// NewLessonService creates a new LessonService
func NewLessonService(weekRepo repositories.IWeekRepository, lessonRepo repositories.ILessonRepository) LessonService {
	return &lessonServiceImpl{
		weekRepo:   weekRepo,
		lessonRepo: lessonRepo,
	}
}

// normalizeSlides validates a deck payload and returns the slide array to store.
// Absent or JSON null payloads yield nil.
func normalizeSlides(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	deck, err := slides.ParseDeck(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", apperrors.ErrValidationFailed, apperrors.ErrInvalidSlides, err)
	}
	if err := slides.Validate(deck); err != nil {
		problems := make([]string, 0)
		for _, se := range slides.SlideErrors(err) {
			problems = append(problems, se.Error())
		}
		if len(problems) == 0 {
			problems = append(problems, err.Error())
		}
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("%s: %s", apperrors.ErrInvalidSlides, strings.Join(problems, "; ")),
			map[string]interface{}{"field": "slides", "problems": problems},
		)
	}

	stored, err := deck.MarshalSlides()
	if err != nil {
		return nil, fmt.Errorf("error encoding slides: %w", err)
	}
	return stored, nil
}

func validateLesson(lesson *models.CourseLesson) error {
	if !validation.IsTitle(lesson.Title) {
		return fmt.Errorf("%w: title must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.TitleMinLength, validation.TitleMaxLength)
	}
	if !validation.IsSlug(lesson.Slug) {
		return fmt.Errorf("%w: slug must be lower-case words joined by hyphens", apperrors.ErrValidationFailed)
	}
	if lesson.VideoDurationSeconds != nil && *lesson.VideoDurationSeconds < 0 {
		return fmt.Errorf("%w: video duration cannot be negative", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateLesson appends a lesson to a week
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, weekID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if weekID <= 0 {
		return nil, fmt.Errorf("%w: invalid week ID", apperrors.ErrValidationFailed)
	}

	lesson := &models.CourseLesson{
		WeekID:               weekID,
		Slug:                 strings.TrimSpace(req.Slug),
		Title:                strings.TrimSpace(req.Title),
		Summary:              optionalText(req.Summary),
		VideoURL:             optionalText(req.VideoURL),
		VideoDurationSeconds: req.VideoDurationSeconds,
		Script:               req.Script,
		IsPublished:          req.IsPublished,
		IsFreePreview:        req.IsFreePreview,
	}
	if lesson.Slug == "" {
		lesson.Slug = validation.Slugify(lesson.Title)
	}
	if err := validateLesson(lesson); err != nil {
		return nil, err
	}

	stored, err := normalizeSlides(req.Slides)
	if err != nil {
		return nil, err
	}
	lesson.Slides = stored

	if _, err := s.weekRepo.GetByID(ctx, weekID); err != nil {
		return nil, fmt.Errorf("error checking week: %w", err)
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("error creating lesson: %w", err)
	}

	logger.Info().Int64("weekID", weekID).Int64("lessonID", lesson.ID).Str("slug", lesson.Slug).Msg("Lesson created")
	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}

// GetLesson returns a single lesson
func (s *lessonServiceImpl) GetLesson(ctx context.Context, id int64) (*dto.LessonResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid lesson ID", apperrors.ErrValidationFailed)
	}
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting lesson: %w", err)
	}
	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}

// UpdateLesson applies a partial update, moving the lesson when a new week is given
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid lesson ID", apperrors.ErrValidationFailed)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting lesson: %w", err)
	}

	if req.Slug != nil {
		lesson.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Title != nil {
		lesson.Title = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		lesson.Summary = optionalText(req.Summary)
	}
	if req.VideoURL != nil {
		lesson.VideoURL = optionalText(req.VideoURL)
	}
	if req.VideoDurationSeconds != nil {
		lesson.VideoDurationSeconds = req.VideoDurationSeconds
	}
	if req.Script != nil {
		lesson.Script = req.Script
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}
	if req.IsFreePreview != nil {
		lesson.IsFreePreview = *req.IsFreePreview
	}
	if req.Slides != nil {
		stored, err := normalizeSlides(req.Slides)
		if err != nil {
			return nil, err
		}
		lesson.Slides = stored
	}

	if err := validateLesson(lesson); err != nil {
		return nil, err
	}

	var moveTo *int64
	if req.WeekID != nil && *req.WeekID != lesson.WeekID {
		target, err := s.weekRepo.GetByID(ctx, *req.WeekID)
		if err != nil {
			return nil, fmt.Errorf("error checking target week: %w", err)
		}
		current, err := s.weekRepo.GetByID(ctx, lesson.WeekID)
		if err != nil {
			return nil, fmt.Errorf("error checking current week: %w", err)
		}
		if target.CourseID != current.CourseID {
			return nil, fmt.Errorf("%w: lessons can only move between weeks of the same course", apperrors.ErrValidationFailed)
		}
		moveTo = &target.ID
	}

	if err := s.lessonRepo.Update(ctx, lesson, moveTo); err != nil {
		return nil, fmt.Errorf("error updating lesson: %w", err)
	}

	if moveTo != nil {
		logger.Info().Int64("lessonID", id).Int64("weekID", *moveTo).Int("position", lesson.Position).Msg("Lesson moved")
	}
	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}

// DeleteLesson deletes a lesson
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid lesson ID", apperrors.ErrValidationFailed)
	}
	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	logger.Info().Int64("lessonID", id).Msg("Lesson deleted")
	return nil
}
