// Package storage persists uploaded media files on the local filesystem. The
// files are served back by the HTTP layer under the configured public path.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the stream to disk under a timestamp-prefixed name so repeated
// uploads of the same filename never collide. It returns the stored name and
// the number of bytes written.
func (s *DiskStore) Save(reader io.Reader, originalName string) (string, int64, error) {
	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", 0, fmt.Errorf("error creating file %s: %w", storedName, err)
	}

	size, err := io.Copy(dst, reader)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(s.dir, storedName))
		return "", 0, fmt.Errorf("error writing file %s: %w", storedName, err)
	}

	return storedName, size, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *DiskStore) Remove(storedName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing file %s: %w", storedName, err)
	}
	return nil
}
