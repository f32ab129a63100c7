package filestorage

import (
	"mime/multipart"
)

// StoredFile represents information about a stored file
type StoredFile struct {
	Path     string // Path relative to the storage root
	URL      string // Public URL the file is served from
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // MIME type of the file
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath of the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// DeleteFile removes a file from storage by its relative path
	DeleteFile(relPath string) error
}
