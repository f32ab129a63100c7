// Package seed creates the data a fresh installation needs.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/config"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/auth"
	"github.com/yigit/psychcourse/internal/pkg/logger"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

// DemoCourseSlug identifies the sample course
const DemoCourseSlug = "introduction-to-psychology"

// Seeder writes default records through the repositories
type Seeder struct {
	admins  repositories.IAdminUserRepository
	courses repositories.ICourseRepository
	weeks   repositories.IWeekRepository
	lessons repositories.ILessonRepository

	bcryptCost int
}

// NewSeeder creates a Seeder
func NewSeeder(
	admins repositories.IAdminUserRepository,
	courses repositories.ICourseRepository,
	weeks repositories.IWeekRepository,
	lessons repositories.ILessonRepository,
) *Seeder {
	return &Seeder{admins: admins, courses: courses, weeks: weeks, lessons: lessons}
}

// WithBcryptCost sets the cost used to hash the seeded admin password
func (s *Seeder) WithBcryptCost(cost int) *Seeder {
	s.bcryptCost = cost
	return s
}

// EnsureAdmin creates the admin account unless one with the email exists.
// An empty password skips seeding.
func (s *Seeder) EnsureAdmin(ctx context.Context, email, password, displayName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		logger.Warn().Msg("Admin email or password not configured, skipping admin seed")
		return nil
	}

	exists, err := s.admins.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking admin: %w", err)
	}
	if exists {
		logger.Debug().Str("email", email).Msg("Admin already exists")
		return nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &models.AdminUser{Email: email, PasswordHash: hash, DisplayName: displayName}
	if err := s.admins.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return fmt.Errorf("error creating admin: %w", err)
	}

	logger.Info().Str("email", email).Msg("Default admin created")
	return nil
}

// EnsureDemoCourse creates a published course with one lesson per built-in
// deck, so every deck is reachable at /lessons/<slug>/slides.
func (s *Seeder) EnsureDemoCourse(ctx context.Context, registry *slides.Registry) error {
	if _, err := s.courses.GetBySlug(ctx, DemoCourseSlug); err == nil {
		logger.Debug().Msg("Demo course already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrCourseNotFound) {
		return fmt.Errorf("error checking demo course: %w", err)
	}

	subtitle := "A guided tour of how minds work"
	course := &models.Course{
		Slug:        DemoCourseSlug,
		Title:       "Introduction to Psychology",
		Subtitle:    &subtitle,
		PriceCents:  4900,
		Currency:    "USD",
		IsPublished: true,
		Metadata:    map[string]any{"level": "beginner"},
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return fmt.Errorf("error creating demo course: %w", err)
	}

	week := &models.CourseWeek{CourseID: course.ID, Title: "Week 1: Foundations"}
	if err := s.weeks.Create(ctx, week); err != nil {
		return fmt.Errorf("error creating demo week: %w", err)
	}

	for i, slug := range registry.Slugs() {
		deck, _ := registry.Get(slug)
		title := deck.Title
		if title == "" {
			title = strings.ToUpper(slug[:1]) + strings.ReplaceAll(slug[1:], "-", " ")
		}
		lesson := &models.CourseLesson{
			WeekID:        week.ID,
			Slug:          slug,
			Title:         title,
			IsPublished:   true,
			IsFreePreview: i == 0,
		}
		if err := s.lessons.Create(ctx, lesson); err != nil {
			if errors.Is(err, apperrors.ErrLessonSlugExists) {
				logger.Warn().Str("slug", slug).Msg("Lesson slug already taken, demo lesson skipped")
				continue
			}
			return fmt.Errorf("error creating demo lesson %s: %w", slug, err)
		}
	}

	logger.Info().Int64("courseID", course.ID).Int("lessons", len(registry.Slugs())).Msg("Demo course created")
	return nil
}

// CreateDefaultData seeds the admin and, when enabled, the demo course.
// Every step runs; failures are joined.
func (s *Seeder) CreateDefaultData(ctx context.Context, cfg *config.Config, registry *slides.Registry) error {
	var finalErr error

	if err := s.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.DisplayName); err != nil {
		logger.Error().Err(err).Msg("Error seeding admin")
		finalErr = errors.Join(finalErr, err)
	}

	if cfg.Admin.SeedDemoCourse && registry != nil {
		if err := s.EnsureDemoCourse(ctx, registry); err != nil {
			logger.Error().Err(err).Msg("Error seeding demo course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
