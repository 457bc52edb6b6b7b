package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sdejongh/rawpick/pkg/models"
)

// chtimes is replaced in tests to simulate a filesystem refusing timestamps
var chtimes = os.Chtimes

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend.
// A missing or non-directory root yields a KindDirectoryNotFound error.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, models.NewError(models.KindDirectoryNotFound, absPath, "directory not found", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, models.NewError(models.KindDirectoryNotFound, absPath, "path is not a directory", nil)
	}

	return &Local{rootPath: absPath}, nil
}

// Enumerate lists every regular file under dir, recursively.
// It is the plain path-list form of NewLocal plus List; the run engine works
// on backends directly because it needs the relative paths for excludes.
func Enumerate(ctx context.Context, dir string) ([]string, error) {
	local, err := NewLocal(dir)
	if err != nil {
		return nil, err
	}
	defer local.Close()

	files, err := local.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return Paths(files), nil
}

// Paths extracts the paths from a listing
func Paths(files []FileInfo) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// Root returns the backend root
func (l *Local) Root() string {
	return l.rootPath
}

func (l *Local) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.rootPath, path)
}

// List returns all regular files in the directory recursively
func (l *Local) List(ctx context.Context, path string) ([]FileInfo, error) {
	fullPath := l.resolve(path)
	var files []FileInfo

	err := filepath.WalkDir(fullPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:         p,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			Permissions:  uint32(info.Mode().Perm()),
			RelativePath: relPath,
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// WriteNew creates a file that must not exist yet and copies reader into it.
// A partially written file is removed before returning an error.
func (l *Local) WriteNew(ctx context.Context, path string, reader io.Reader, metadata *FileInfo) (int64, error) {
	fullPath := l.resolve(path)

	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return 0, fmt.Errorf("%w: %s", ErrExist, fullPath)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(file, reader)
	if err != nil {
		file.Close()
		os.Remove(fullPath)
		return written, fmt.Errorf("failed to write file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return written, fmt.Errorf("failed to close file: %w", err)
	}

	if metadata != nil && metadata.Size > 0 && written != metadata.Size {
		os.Remove(fullPath)
		return written, fmt.Errorf("incomplete write: expected %d bytes, wrote %d", metadata.Size, written)
	}

	if metadata != nil && !metadata.ModTime.IsZero() {
		if err := chtimes(fullPath, metadata.ModTime, metadata.ModTime); err != nil {
			os.Remove(fullPath)
			return written, fmt.Errorf("failed to set modification time: %w", err)
		}
	}

	return written, nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(l.resolve(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	fullPath := l.resolve(path)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	relPath, err := filepath.Rel(l.rootPath, fullPath)
	if err != nil {
		relPath = fullPath
	}

	return &FileInfo{
		Path:         fullPath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Permissions:  uint32(info.Mode().Perm()),
		RelativePath: relPath,
	}, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
