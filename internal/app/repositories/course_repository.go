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

// ICourseRepository defines the database operations on courses
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	GetByWeekID(ctx context.Context, weekID int64) (*models.Course, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.Course, int64, error)
	Delete(ctx context.Context, id int64) error
	// Save writes the course columns (when course is non-nil) together with the
	// given week and lesson position changes in a single transaction.
	Save(ctx context.Context, course *models.Course, weekChanges, lessonChanges []PositionChange) error
}

var courseColumns = []string{
	"id", "slug", "title", "subtitle", "description", "price_cents", "sale_price_cents",
	"currency", "is_published", "metadata", "created_at", "updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Subtitle, &c.Description, &c.PriceCents, &c.SalePriceCents,
		&c.Currency, &c.IsPublished, &c.Metadata, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	return c, nil
}

func metadataValue(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// Create inserts a course and fills its generated columns
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("slug", "title", "subtitle", "description", "price_cents", "sale_price_cents", "currency", "is_published", "metadata").
		Values(course.Slug, course.Title, course.Subtitle, course.Description, course.PriceCents,
			course.SalePriceCents, course.Currency, course.IsPublished, metadataValue(course.Metadata)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCourseSlugExists
		}
		logger.Error().Err(err).Str("slug", course.Slug).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

func (r *CourseRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug retrieves a course by slug
func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// GetByWeekID retrieves the course owning a week
func (r *CourseRepository) GetByWeekID(ctx context.Context, weekID int64) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Expr("id = (SELECT course_id FROM course_weeks WHERE id = ?)", weekID))
}

// List returns one page of courses, newest first, with the total count
func (r *CourseRepository) List(ctx context.Context, offset, limit uint64) ([]*models.Course, int64, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		Column("COUNT(*) OVER()").
		From("courses").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	var total int64
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(
			&c.ID, &c.Slug, &c.Title, &c.Subtitle, &c.Description, &c.PriceCents, &c.SalePriceCents,
			&c.Currency, &c.IsPublished, &c.Metadata, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during list")
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	// COUNT(*) OVER() is absent when the page is past the end
	if len(courses) == 0 && offset > 0 {
		if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM courses").Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("error counting courses: %w", err)
		}
	}

	return courses, total, nil
}

// buildCourseUpdate builds the statement writing every editable course column
func (r *CourseRepository) buildCourseUpdate(course *models.Course) (string, []any, error) {
	return r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"slug":             course.Slug,
			"title":            course.Title,
			"subtitle":         course.Subtitle,
			"description":      course.Description,
			"price_cents":      course.PriceCents,
			"sale_price_cents": course.SalePriceCents,
			"currency":         course.Currency,
			"is_published":     course.IsPublished,
			"metadata":         metadataValue(course.Metadata),
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
}

// Save writes course columns and position changes atomically
func (r *CourseRepository) Save(ctx context.Context, course *models.Course, weekChanges, lessonChanges []PositionChange) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if course != nil {
			sql, args, err := r.buildCourseUpdate(course)
			if err != nil {
				logger.Error().Err(err).Msg("Error building update course SQL")
				return fmt.Errorf("failed to build update course query: %w", err)
			}
			if err := tx.QueryRow(ctx, sql, args...).Scan(&course.UpdatedAt); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrCourseNotFound
				}
				if dberrors.IsDuplicateKeyError(err) {
					return apperrors.ErrCourseSlugExists
				}
				logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
				return fmt.Errorf("error updating course: %w", err)
			}
		}

		if len(weekChanges) == 0 && len(lessonChanges) == 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, deferPositionConstraints); err != nil {
			return fmt.Errorf("error deferring position constraints: %w", err)
		}
		if err := applyPositionChanges(ctx, tx, r.sb, "course_weeks", weekChanges); err != nil {
			return err
		}
		return applyPositionChanges(ctx, tx, r.sb, "course_lessons", lessonChanges)
	})
}

// Delete removes a course; courses that still have weeks are refused
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	var hasWeeks bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM course_weeks WHERE course_id = $1)`, id).Scan(&hasWeeks)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error checking course weeks")
		return fmt.Errorf("error checking course weeks: %w", err)
	}
	if hasWeeks {
		return apperrors.ErrCourseHasWeeks
	}

	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrCourseHasWeeks
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
