package repositories

import (
	"context"
	"io"
	"time"
)

// ArchiveStorage stores exported files outside the tracker state
type ArchiveStorage interface {
	// UploadFile uploads an object
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error

	// GetFileURL returns a time-limited download URL for an object
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)

	// ListFiles lists object names under prefix
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}
