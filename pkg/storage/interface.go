package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a path does not exist
var ErrNotFound = errors.New("file not found")

// Provider defines the interface for storage providers. Paths are slash
// separated and rooted at a rental folder id, e.g. "<folderId>/contract.pdf".
type Provider interface {
	// Put writes r to path, replacing any existing file
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// Open returns a reader for the file at path
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// GetSignedURL returns a time limited URL for reading the file
	GetSignedURL(ctx context.Context, path string) (string, error)

	// Delete deletes a file from storage
	Delete(ctx context.Context, path string) error

	// GetFileInfo returns basic information about a file
	GetFileInfo(ctx context.Context, path string) (*FileInfo, error)

	// ListObjects lists files under prefix
	ListObjects(ctx context.Context, prefix string) ([]FileInfo, error)
}

// FileInfo represents basic file information
type FileInfo struct {
	Path         string
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// SignedURLTTL is how long a signed read URL stays valid
const SignedURLTTL = time.Hour
