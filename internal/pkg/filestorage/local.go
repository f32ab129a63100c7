package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// ErrInvalidPath is returned for paths that escape the storage root.
var ErrInvalidPath = errors.New("invalid file path")

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL the root directory is served from
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is the URL prefix the directory is served under (e.g. "/uploads").
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFileWithPath saves a file to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file uploaded")
	}

	subPath, err := cleanRelative(subPath)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// Generate a unique filename to prevent collisions
	uniqueFilename := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := path.Join(subPath, uniqueFilename)
	stored := &StoredFile{
		Path:     relPath,
		URL:      ls.baseURL + "/" + relPath,
		Filename: filepath.Base(fileHeader.Filename),
		FileSize: written,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}
	if stored.MimeType == "" {
		stored.MimeType = "application/octet-stream"
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("File saved successfully")
	return stored, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	if relPath == "" {
		return nil
	}

	cleaned, err := cleanRelative(relPath)
	if err != nil || cleaned == "" {
		return fmt.Errorf("%w: %s", ErrInvalidPath, relPath)
	}

	physicalPath := ls.GetFullPath(cleaned)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a relative path.
func (ls *LocalStorage) GetFullPath(relPath string) string {
	return filepath.Join(ls.basePath, filepath.FromSlash(relPath))
}

// cleanRelative normalises a slash-separated relative path and rejects
// anything that would leave the storage root.
func cleanRelative(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	cleaned := path.Clean("/" + filepath.ToSlash(p))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return cleaned, nil
}
