package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/filestorage"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// MaxAssetSize bounds a single uploaded asset
const MaxAssetSize = 100 << 20

// AssetService defines the interface for course asset operations
type AssetService interface {
	ListAssets(ctx context.Context, courseID int64) (*dto.AssetListResponse, error)
	UploadAsset(ctx context.Context, courseID int64, lessonID *int64, file *multipart.FileHeader) (*dto.AssetResponse, error)
	DeleteAsset(ctx context.Context, assetID int64) error
}

// assetServiceImpl implements AssetService
type assetServiceImpl struct {
	courseRepo repositories.ICourseRepository
	weekRepo   repositories.IWeekRepository
	lessonRepo repositories.ILessonRepository
	assetRepo  repositories.IAssetRepository
	storage    filestorage.FileStorage
}

// NewAssetService creates a new AssetService
func NewAssetService(
	courseRepo repositories.ICourseRepository,
	weekRepo repositories.IWeekRepository,
	lessonRepo repositories.ILessonRepository,
	assetRepo repositories.IAssetRepository,
	storage filestorage.FileStorage,
) AssetService {
	return &assetServiceImpl{
		courseRepo: courseRepo,
		weekRepo:   weekRepo,
		lessonRepo: lessonRepo,
		assetRepo:  assetRepo,
		storage:    storage,
	}
}

// ListAssets lists the uploaded files of a course
func (s *assetServiceImpl) ListAssets(ctx context.Context, courseID int64) (*dto.AssetListResponse, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}

	assets, err := s.assetRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing assets: %w", err)
	}

	resp := &dto.AssetListResponse{Assets: make([]dto.AssetResponse, 0, len(assets))}
	for _, a := range assets {
		resp.Assets = append(resp.Assets, dto.NewAssetResponse(a))
	}
	return resp, nil
}

// checkLessonInCourse verifies that a lesson belongs to one of the course's weeks
func (s *assetServiceImpl) checkLessonInCourse(ctx context.Context, courseID, lessonID int64) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("error checking lesson: %w", err)
	}
	week, err := s.weekRepo.GetByID(ctx, lesson.WeekID)
	if err != nil {
		return fmt.Errorf("error checking lesson week: %w", err)
	}
	if week.CourseID != courseID {
		return fmt.Errorf("%w: lesson %d does not belong to course %d", apperrors.ErrValidationFailed, lessonID, courseID)
	}
	return nil
}

// UploadAsset stores a file and records it against the course (and optionally a lesson)
func (s *assetServiceImpl) UploadAsset(ctx context.Context, courseID int64, lessonID *int64, file *multipart.FileHeader) (*dto.AssetResponse, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrFileRequired)
	}
	if file.Size > MaxAssetSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrValidationFailed, MaxAssetSize)
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if lessonID != nil {
		if err := s.checkLessonInCourse(ctx, courseID, *lessonID); err != nil {
			return nil, err
		}
	}

	stored, err := s.storage.SaveFileWithPath(file, fmt.Sprintf("courses/%d", courseID))
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	asset := &models.CourseAsset{
		CourseID: courseID,
		LessonID: lessonID,
		FileName: stored.Filename,
		FilePath: stored.Path,
		FileURL:  stored.URL,
		MimeType: stored.MimeType,
		FileSize: stored.FileSize,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		// Don't leave an orphaned file behind
		if delErr := s.storage.DeleteFile(stored.Path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", stored.Path).Msg("Failed to remove file after asset insert error")
		}
		return nil, fmt.Errorf("error creating asset: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("assetID", asset.ID).Str("file", asset.FileName).Msg("Asset uploaded")
	resp := dto.NewAssetResponse(asset)
	return &resp, nil
}

// DeleteAsset removes the stored file and its record
func (s *assetServiceImpl) DeleteAsset(ctx context.Context, assetID int64) error {
	if assetID <= 0 {
		return fmt.Errorf("%w: invalid asset ID", apperrors.ErrValidationFailed)
	}

	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return fmt.Errorf("error getting asset: %w", err)
	}

	if err := s.storage.DeleteFile(asset.FilePath); err != nil {
		return fmt.Errorf("error deleting asset file: %w", err)
	}
	if err := s.assetRepo.Delete(ctx, assetID); err != nil {
		return fmt.Errorf("error deleting asset: %w", err)
	}

	logger.Info().Int64("assetID", assetID).Msg("Asset deleted")
	return nil
}
