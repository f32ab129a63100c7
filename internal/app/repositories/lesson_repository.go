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

// ILessonRepository defines the database operations on course lessons
type ILessonRepository interface {
	// Create appends the lesson after the last lesson of its week
	Create(ctx context.Context, lesson *models.CourseLesson) error
	GetByID(ctx context.Context, id int64) (*models.CourseLesson, error)
	GetBySlug(ctx context.Context, slug string) (*models.CourseLesson, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseLesson, error)
	// Update writes the lesson columns. When moveToWeekID is set the lesson is
	// appended to that week and its previous week is renumbered.
	Update(ctx context.Context, lesson *models.CourseLesson, moveToWeekID *int64) error
	// Delete removes a lesson and closes the gap in its week's ordering
	Delete(ctx context.Context, id int64) error
}

var lessonColumns = []string{
	"l.id", "l.week_id", "l.position", "l.slug", "l.title", "l.summary", "l.video_url",
	"l.video_duration_seconds", "l.script", "l.slides", "l.is_published", "l.is_free_preview",
	"l.created_at", "l.updated_at",
}

// LessonRepository handles course lesson database operations
type LessonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func scanLesson(row pgx.Row) (*models.CourseLesson, error) {
	l := &models.CourseLesson{}
	var slides []byte
	err := row.Scan(
		&l.ID, &l.WeekID, &l.Position, &l.Slug, &l.Title, &l.Summary, &l.VideoURL,
		&l.VideoDurationSeconds, &l.Script, &slides, &l.IsPublished, &l.IsFreePreview,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(slides) > 0 {
		l.Slides = slides
	}
	return l, nil
}

func mapLessonWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "course_lessons_slug_key"):
		return apperrors.ErrLessonSlugExists
	case dberrors.IsDuplicateKeyError(err):
		return apperrors.ErrConflict
	case dberrors.IsForeignKeyError(err):
		return apperrors.ErrWeekNotFound
	}
	return nil
}

// lockWeekAndNextPosition locks a week row and returns the position after its last lesson
func lockWeekAndNextPosition(ctx context.Context, tx pgx.Tx, weekID int64) (int, error) {
	var id int64
	if err := tx.QueryRow(ctx, `SELECT id FROM course_weeks WHERE id = $1 FOR UPDATE`, weekID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrWeekNotFound
		}
		return 0, fmt.Errorf("error locking week: %w", err)
	}

	var position int
	if err := tx.QueryRow(ctx, nextPositionSQL("course_lessons", "week_id"), weekID).Scan(&position); err != nil {
		return 0, fmt.Errorf("error computing lesson position: %w", err)
	}
	return position, nil
}

// Create inserts a lesson at the end of its week
func (r *LessonRepository) Create(ctx context.Context, lesson *models.CourseLesson) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		position, err := lockWeekAndNextPosition(ctx, tx, lesson.WeekID)
		if err != nil {
			return err
		}
		lesson.Position = position

		sql, args, err := r.sb.Insert("course_lessons").
			Columns("week_id", "position", "slug", "title", "summary", "video_url", "video_duration_seconds",
				"script", "slides", "is_published", "is_free_preview").
			Values(lesson.WeekID, lesson.Position, lesson.Slug, lesson.Title, lesson.Summary, lesson.VideoURL,
				lesson.VideoDurationSeconds, lesson.Script, nullableJSON(lesson.Slides), lesson.IsPublished, lesson.IsFreePreview).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create lesson SQL")
			return fmt.Errorf("failed to build create lesson query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&lesson.ID, &lesson.CreatedAt, &lesson.UpdatedAt); err != nil {
			if mapped := mapLessonWriteError(err); mapped != nil {
				return mapped
			}
			logger.Error().Err(err).Int64("weekID", lesson.WeekID).Msg("Error executing create lesson query")
			return fmt.Errorf("error creating lesson: %w", err)
		}
		return nil
	})
}

func (r *LessonRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.CourseLesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).
		From("course_lessons l").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lesson SQL")
		return nil, fmt.Errorf("failed to build get lesson query: %w", err)
	}

	lesson, err := scanLesson(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Msg("Error scanning lesson row")
		return nil, fmt.Errorf("error getting lesson: %w", err)
	}
	return lesson, nil
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.CourseLesson, error) {
	return r.getOne(ctx, squirrel.Eq{"l.id": id})
}

// GetBySlug retrieves a lesson by its globally unique slug
func (r *LessonRepository) GetBySlug(ctx context.Context, slug string) (*models.CourseLesson, error) {
	return r.getOne(ctx, squirrel.Eq{"l.slug": slug})
}

// ListByCourse returns every lesson of a course ordered by week then lesson position
func (r *LessonRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseLesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).
		From("course_lessons l").
		Join("course_weeks w ON w.id = l.week_id").
		Where(squirrel.Eq{"w.course_id": courseID}).
		OrderBy("w.position ASC", "l.position ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list lessons SQL")
		return nil, fmt.Errorf("failed to build list lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list lessons query")
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()

	lessons := []*models.CourseLesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning lesson row during list")
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}
	return lessons, nil
}

// buildLessonUpdate builds the statement writing the editable lesson columns.
// week_id and position are only written when the lesson moves, so a plain
// edit never overwrites positions changed by a concurrent reorder.
func (r *LessonRepository) buildLessonUpdate(lesson *models.CourseLesson, moving bool) (string, []any, error) {
	columns := map[string]interface{}{
		"slug":                   lesson.Slug,
		"title":                  lesson.Title,
		"summary":                lesson.Summary,
		"video_url":              lesson.VideoURL,
		"video_duration_seconds": lesson.VideoDurationSeconds,
		"script":                 lesson.Script,
		"slides":                 nullableJSON(lesson.Slides),
		"is_published":           lesson.IsPublished,
		"is_free_preview":        lesson.IsFreePreview,
		"updated_at":             squirrel.Expr("NOW()"),
	}
	if moving {
		columns["week_id"] = lesson.WeekID
		columns["position"] = lesson.Position
	}

	return r.sb.Update("course_lessons").
		SetMap(columns).
		Where(squirrel.Eq{"id": lesson.ID}).
		Suffix("RETURNING week_id, position, updated_at").
		ToSql()
}

// Update writes a lesson, optionally moving it to the end of another week
func (r *LessonRepository) Update(ctx context.Context, lesson *models.CourseLesson, moveToWeekID *int64) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var fromWeekID int64
		if moveToWeekID != nil {
			err := tx.QueryRow(ctx, `SELECT week_id FROM course_lessons WHERE id = $1 FOR UPDATE`, lesson.ID).Scan(&fromWeekID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrLessonNotFound
				}
				return fmt.Errorf("error locking lesson: %w", err)
			}

			position, err := lockWeekAndNextPosition(ctx, tx, *moveToWeekID)
			if err != nil {
				return err
			}
			lesson.WeekID = *moveToWeekID
			lesson.Position = position
		}

		sql, args, err := r.buildLessonUpdate(lesson, moveToWeekID != nil)
		if err != nil {
			logger.Error().Err(err).Msg("Error building update lesson SQL")
			return fmt.Errorf("failed to build update lesson query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&lesson.WeekID, &lesson.Position, &lesson.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrLessonNotFound
			}
			if mapped := mapLessonWriteError(err); mapped != nil {
				return mapped
			}
			logger.Error().Err(err).Int64("lessonID", lesson.ID).Msg("Error executing update lesson query")
			return fmt.Errorf("error updating lesson: %w", err)
		}

		if moveToWeekID == nil || fromWeekID == *moveToWeekID {
			return nil
		}

		if _, err := tx.Exec(ctx, deferPositionConstraints); err != nil {
			return fmt.Errorf("error deferring position constraints: %w", err)
		}
		if _, err := tx.Exec(ctx, compactPositionsSQL("course_lessons", "week_id"), fromWeekID); err != nil {
			logger.Error().Err(err).Int64("weekID", fromWeekID).Msg("Error compacting lesson positions")
			return fmt.Errorf("error compacting lesson positions: %w", err)
		}
		return nil
	})
}

// Delete removes a lesson and renumbers the rest of its week
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var weekID int64
		err := tx.QueryRow(ctx, `DELETE FROM course_lessons WHERE id = $1 RETURNING week_id`, id).Scan(&weekID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrLessonNotFound
			}
			logger.Error().Err(err).Int64("lessonID", id).Msg("Error executing delete lesson query")
			return fmt.Errorf("error deleting lesson: %w", err)
		}

		if _, err := tx.Exec(ctx, deferPositionConstraints); err != nil {
			return fmt.Errorf("error deferring position constraints: %w", err)
		}
		if _, err := tx.Exec(ctx, compactPositionsSQL("course_lessons", "week_id"), weekID); err != nil {
			logger.Error().Err(err).Int64("weekID", weekID).Msg("Error compacting lesson positions")
			return fmt.Errorf("error compacting lesson positions: %w", err)
		}
		return nil
	})
}
