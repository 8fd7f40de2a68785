package storage

import (
	"context"
	"io"
)

// Storage defines the interface for photo blob storage.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob stored under the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob stored under the given relative path.
	Delete(ctx context.Context, path string) error
}
