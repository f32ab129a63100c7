package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/dberrors"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// IWeekRepository defines the database operations on course weeks
type IWeekRepository interface {
	// Create appends the week after the last week of its course
	Create(ctx context.Context, week *models.CourseWeek) error
	GetByID(ctx context.Context, id int64) (*models.CourseWeek, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseWeek, error)
	Update(ctx context.Context, week *models.CourseWeek) error
	// Delete removes an empty week and closes the gap in its course's ordering
	Delete(ctx context.Context, id int64) error
}

var weekColumns = []string{"id", "course_id", "position", "title", "summary", "created_at", "updated_at"}

// WeekRepository handles course week database operations
type WeekRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewWeekRepository creates a new WeekRepository
func NewWeekRepository(db *pgxpool.Pool) *WeekRepository {
	return &WeekRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func scanWeek(row pgx.Row) (*models.CourseWeek, error) {
	w := &models.CourseWeek{}
	if err := row.Scan(&w.ID, &w.CourseID, &w.Position, &w.Title, &w.Summary, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a week at the end of its course
func (r *WeekRepository) Create(ctx context.Context, week *models.CourseWeek) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		// Lock the course row so concurrent appends serialize
		var courseID int64
		err := tx.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, week.CourseID).Scan(&courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error locking course: %w", err)
		}

		if err := tx.QueryRow(ctx, nextPositionSQL("course_weeks", "course_id"), week.CourseID).Scan(&week.Position); err != nil {
			return fmt.Errorf("error computing week position: %w", err)
		}

		sql, args, err := r.sb.Insert("course_weeks").
			Columns("course_id", "position", "title", "summary").
			Values(week.CourseID, week.Position, week.Title, week.Summary).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create week SQL")
			return fmt.Errorf("failed to build create week query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&week.ID, &week.CreatedAt, &week.UpdatedAt); err != nil {
			if dberrors.IsDuplicateKeyError(err) {
				return apperrors.ErrConflict
			}
			logger.Error().Err(err).Int64("courseID", week.CourseID).Msg("Error executing create week query")
			return fmt.Errorf("error creating week: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a week by ID
func (r *WeekRepository) GetByID(ctx context.Context, id int64) (*models.CourseWeek, error) {
	sql, args, err := r.sb.Select(weekColumns...).
		From("course_weeks").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get week SQL")
		return nil, fmt.Errorf("failed to build get week query: %w", err)
	}

	week, err := scanWeek(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWeekNotFound
		}
		logger.Error().Err(err).Int64("weekID", id).Msg("Error scanning week row")
		return nil, fmt.Errorf("error getting week: %w", err)
	}
	return week, nil
}

// ListByCourse returns the weeks of a course in position order
func (r *WeekRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseWeek, error) {
	sql, args, err := r.sb.Select(weekColumns...).
		From("course_weeks").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list weeks SQL")
		return nil, fmt.Errorf("failed to build list weeks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list weeks query")
		return nil, fmt.Errorf("error querying weeks: %w", err)
	}
	defer rows.Close()

	weeks := []*models.CourseWeek{}
	for rows.Next() {
		w, err := scanWeek(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning week row during list")
			return nil, fmt.Errorf("error scanning week row: %w", err)
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating week rows: %w", err)
	}
	return weeks, nil
}

// Update writes the editable week columns
func (r *WeekRepository) Update(ctx context.Context, week *models.CourseWeek) error {
	sql, args, err := r.sb.Update("course_weeks").
		Set("title", week.Title).
		Set("summary", week.Summary).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": week.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update week SQL")
		return fmt.Errorf("failed to build update week query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&week.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrWeekNotFound
		}
		logger.Error().Err(err).Int64("weekID", week.ID).Msg("Error executing update week query")
		return fmt.Errorf("error updating week: %w", err)
	}
	return nil
}

// Delete removes a week that has no lessons
func (r *WeekRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var courseID int64
		err := tx.QueryRow(ctx, `SELECT course_id FROM course_weeks WHERE id = $1 FOR UPDATE`, id).Scan(&courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrWeekNotFound
			}
			return fmt.Errorf("error locking week: %w", err)
		}

		var hasLessons bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM course_lessons WHERE week_id = $1)`, id).Scan(&hasLessons); err != nil {
			logger.Error().Err(err).Int64("weekID", id).Msg("Error checking week lessons")
			return fmt.Errorf("error checking week lessons: %w", err)
		}
		if hasLessons {
			return apperrors.ErrWeekHasLessons
		}

		if _, err := tx.Exec(ctx, `DELETE FROM course_weeks WHERE id = $1`, id); err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrWeekHasLessons
			}
			logger.Error().Err(err).Int64("weekID", id).Msg("Error executing delete week query")
			return fmt.Errorf("error deleting week: %w", err)
		}

		if _, err := tx.Exec(ctx, deferPositionConstraints); err != nil {
			return fmt.Errorf("error deferring position constraints: %w", err)
		}
		if _, err := tx.Exec(ctx, compactPositionsSQL("course_weeks", "course_id"), courseID); err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error compacting week positions")
			return fmt.Errorf("error compacting week positions: %w", err)
		}
		return nil
	})
}
