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

// IAssetRepository defines the database operations on course assets
type IAssetRepository interface {
	Create(ctx context.Context, asset *models.CourseAsset) error
	GetByID(ctx context.Context, id int64) (*models.CourseAsset, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseAsset, error)
	Delete(ctx context.Context, id int64) error
}

var assetColumns = []string{"id", "course_id", "lesson_id", "file_name", "file_path", "file_url", "mime_type", "file_size", "created_at"}

// AssetRepository handles course asset database operations
type AssetRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func scanAsset(row pgx.Row) (*models.CourseAsset, error) {
	a := &models.CourseAsset{}
	err := row.Scan(&a.ID, &a.CourseID, &a.LessonID, &a.FileName, &a.FilePath, &a.FileURL, &a.MimeType, &a.FileSize, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an asset record
func (r *AssetRepository) Create(ctx context.Context, asset *models.CourseAsset) error {
	sql, args, err := r.sb.Insert("course_assets").
		Columns("course_id", "lesson_id", "file_name", "file_path", "file_url", "mime_type", "file_size").
		Values(asset.CourseID, asset.LessonID, asset.FileName, asset.FilePath, asset.FileURL, asset.MimeType, asset.FileSize).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create asset SQL")
		return fmt.Errorf("failed to build create asset query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&asset.ID, &asset.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", asset.CourseID).Msg("Error executing create asset query")
		return fmt.Errorf("error creating asset: %w", err)
	}
	return nil
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*models.CourseAsset, error) {
	sql, args, err := r.sb.Select(assetColumns...).
		From("course_assets").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get asset SQL")
		return nil, fmt.Errorf("failed to build get asset query: %w", err)
	}

	asset, err := scanAsset(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssetNotFound
		}
		logger.Error().Err(err).Int64("assetID", id).Msg("Error scanning asset row")
		return nil, fmt.Errorf("error getting asset: %w", err)
	}
	return asset, nil
}

// ListByCourse returns the assets of a course, oldest first
func (r *AssetRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseAsset, error) {
	sql, args, err := r.sb.Select(assetColumns...).
		From("course_assets").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list assets SQL")
		return nil, fmt.Errorf("failed to build list assets query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list assets query")
		return nil, fmt.Errorf("error querying assets: %w", err)
	}
	defer rows.Close()

	assets := []*models.CourseAsset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning asset row during list")
			return nil, fmt.Errorf("error scanning asset row: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}
	return assets, nil
}

// Delete removes an asset record
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("course_assets").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete asset SQL")
		return fmt.Errorf("failed to build delete asset query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("assetID", id).Msg("Error executing delete asset query")
		return fmt.Errorf("error deleting asset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
