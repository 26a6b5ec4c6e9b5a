package exports

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FilesystemBackend stores exported files under a local directory and
// serves them through the API's download route.
type FilesystemBackend struct {
	dir string
}

// NewFilesystemBackend creates the export directory if needed.
func NewFilesystemBackend(dir string) (*FilesystemBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &FilesystemBackend{dir: dir}, nil
}

// Store moves the cut file into the export directory.
func (b *FilesystemBackend) Store(ctx context.Context, filename, sourcePath string) (*StoredObject, error) {
	dest := filepath.Join(b.dir, filename)
	if err := os.Rename(sourcePath, dest); err != nil {
		return nil, fmt.Errorf("store export file: %w", err)
	}
	return &StoredObject{
		Location: dest,
		URL:      "/api/v1/exports/" + filename,
	}, nil
}

// Open opens the stored file for download.
func (b *FilesystemBackend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return f, nil
}
