package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

// PresentationService resolves the slide deck shown for a published lesson
type PresentationService interface {
	GetDeck(ctx context.Context, lessonSlug string) (*dto.DeckResponse, error)
}

// presentationServiceImpl implements PresentationService
type presentationServiceImpl struct {
	courseRepo repositories.ICourseRepository
	lessonRepo repositories.ILessonRepository
	registry   *slides.Registry
}

// NewPresentationService creates a new PresentationService
func NewPresentationService(
	courseRepo repositories.ICourseRepository,
	lessonRepo repositories.ILessonRepository,
	registry *slides.Registry,
) PresentationService {
	return &presentationServiceImpl{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		registry:   registry,
	}
}

// GetDeck returns the lesson's own deck, falling back to the built-in deck
// registered under the same slug. Unpublished lessons and lessons of
// unpublished courses are reported as not found.
func (s *presentationServiceImpl) GetDeck(ctx context.Context, lessonSlug string) (*dto.DeckResponse, error) {
	lessonSlug = strings.TrimSpace(lessonSlug)

	lesson, err := s.lessonRepo.GetBySlug(ctx, lessonSlug)
	if err != nil {
		return nil, fmt.Errorf("error getting lesson: %w", err)
	}
	if !lesson.IsPublished {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrLessonNotFound, apperrors.ErrLessonNotPublished)
	}

	course, err := s.courseRepo.GetByWeekID(ctx, lesson.WeekID)
	if err != nil {
		return nil, fmt.Errorf("error getting lesson course: %w", err)
	}
	if !course.IsPublished {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrLessonNotFound, apperrors.ErrCourseNotPublished)
	}

	resp := &dto.DeckResponse{
		LessonSlug:  lesson.Slug,
		Title:       lesson.Title,
		CourseSlug:  course.Slug,
		CourseTitle: course.Title,
	}

	var deck *slides.Deck
	switch {
	case lesson.HasSlides():
		deck, err = slides.ParseDeck(lesson.Slides)
		if err != nil {
			return nil, fmt.Errorf("stored slides of lesson %s are unreadable: %w", lesson.Slug, err)
		}
		resp.Source = dto.DeckSourceLesson
	case s.registry != nil:
		var ok bool
		if deck, ok = s.registry.Get(lesson.Slug); ok {
			resp.Source = dto.DeckSourceBuiltin
		}
	}
	if deck.Len() == 0 {
		return nil, apperrors.ErrDeckNotFound
	}

	if deck.Title != "" {
		resp.Title = deck.Title
	}
	resp.Slides = deck.Slides
	return resp, nil
}

// IsHiddenLesson reports whether err means the lesson must be presented as missing
func IsHiddenLesson(err error) bool {
	return errors.Is(err, apperrors.ErrLessonNotFound) || errors.Is(err, apperrors.ErrDeckNotFound)
}
