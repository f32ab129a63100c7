package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/logger"
	"github.com/yigit/psychcourse/internal/pkg/validation"
)

// WeekService defines the interface for course week operations
type WeekService interface {
	CreateWeek(ctx context.Context, courseID int64, req *dto.CreateWeekRequest) (*dto.WeekResponse, error)
	UpdateWeek(ctx context.Context, weekID int64, req *dto.UpdateWeekRequest) (*dto.WeekResponse, error)
	DeleteWeek(ctx context.Context, weekID int64) error
}

// weekServiceImpl implements WeekService
type weekServiceImpl struct {
	courseRepo repositories.ICourseRepository
	weekRepo   repositories.IWeekRepository
}

// NewWeekService creates a new WeekService
func NewWeekService(courseRepo repositories.ICourseRepository, weekRepo repositories.IWeekRepository) WeekService {
	return &weekServiceImpl{
		courseRepo: courseRepo,
		weekRepo:   weekRepo,
	}
}

func validateWeekTitle(title string) error {
	if !validation.IsTitle(title) {
		return fmt.Errorf("%w: title must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.TitleMinLength, validation.TitleMaxLength)
	}
	return nil
}

// CreateWeek appends a week to a course
func (s *weekServiceImpl) CreateWeek(ctx context.Context, courseID int64, req *dto.CreateWeekRequest) (*dto.WeekResponse, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	week := &models.CourseWeek{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Summary:  optionalText(req.Summary),
	}
	if err := validateWeekTitle(week.Title); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}

	if err := s.weekRepo.Create(ctx, week); err != nil {
		return nil, fmt.Errorf("error creating week: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("weekID", week.ID).Int("position", week.Position).Msg("Week created")
	resp := dto.NewWeekResponse(week)
	return &resp, nil
}

// UpdateWeek applies a partial update to a week
func (s *weekServiceImpl) UpdateWeek(ctx context.Context, weekID int64, req *dto.UpdateWeekRequest) (*dto.WeekResponse, error) {
	if weekID <= 0 {
		return nil, fmt.Errorf("%w: invalid week ID", apperrors.ErrValidationFailed)
	}

	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("error getting week: %w", err)
	}

	if req.Title != nil {
		week.Title = strings.TrimSpace(*req.Title)
		if err := validateWeekTitle(week.Title); err != nil {
			return nil, err
		}
	}
	if req.Summary != nil {
		week.Summary = optionalText(req.Summary)
	}

	if err := s.weekRepo.Update(ctx, week); err != nil {
		return nil, fmt.Errorf("error updating week: %w", err)
	}

	resp := dto.NewWeekResponse(week)
	return &resp, nil
}

// DeleteWeek deletes a week; weeks with lessons are refused
func (s *weekServiceImpl) DeleteWeek(ctx context.Context, weekID int64) error {
	if weekID <= 0 {
		return fmt.Errorf("%w: invalid week ID", apperrors.ErrValidationFailed)
	}
	if err := s.weekRepo.Delete(ctx, weekID); err != nil {
		return fmt.Errorf("error deleting week: %w", err)
	}
	logger.Info().Int64("weekID", weekID).Msg("Week deleted")
	return nil
}
