package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrExist is returned by WriteNew when the target path is already taken
var ErrExist = errors.New("file already exists")

// FileInfo represents metadata about a file
type FileInfo struct {
	Path         string
	Size         int64
	ModTime      time.Time
	Permissions  uint32
	RelativePath string
}

// Backend defines the interface for storage operations.
// Paths are relative to the backend root unless already absolute.
type Backend interface {
	// Root returns the absolute root directory of the backend
	Root() string

	// List returns every regular file under path, recursively
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// WriteNew creates path exclusively and fills it from reader.
	// It never replaces an existing file; it returns ErrExist instead.
	// If metadata is provided, the modification time is preserved.
	WriteNew(ctx context.Context, path string, reader io.Reader, metadata *FileInfo) (int64, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Close releases any resources held by the backend
	Close() error
}
