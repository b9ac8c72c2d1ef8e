package documents

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// LocalStorage keeps original uploads and finalized artifacts in one flat
// directory, served statically under /uploads.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to create uploads directory", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir returns the storage root.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// GenerateUploadName prefixes the original filename with a millisecond
// timestamp, the same naming the upload endpoint has always used.
func (s *LocalStorage) GenerateUploadName(originalName string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))
}

// Save writes body under name via a temp file and an atomic rename, so a
// failed write never leaves a partial artifact behind.
func (s *LocalStorage) Save(name string, body io.Reader) (string, error) {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", apperr.Wrap(apperr.KindStorage, "failed to write file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", apperr.Wrap(apperr.KindStorage, "failed to write file", err)
	}

	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", apperr.Wrap(apperr.KindStorage, "failed to persist file", err)
	}
	return final, nil
}

// TempPath returns a fresh path inside the storage dir for writers that
// produce their output file themselves (pdfcpu writes files, not streams).
// The caller promotes or removes it.
func (s *LocalStorage) TempPath() string {
	return filepath.Join(s.dir, fmt.Sprintf(".tmp-%s", uuid.NewString()))
}

// Promote atomically renames a temp path to its final name and returns the
// final path.
func (s *LocalStorage) Promote(tmpPath, name string) (string, error) {
	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", apperr.Wrap(apperr.KindStorage, "failed to persist file", err)
	}
	return final, nil
}

// Open opens a stored file for reading.
func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.KindNotFound, "stored file not found", err)
		}
		return nil, apperr.Wrap(apperr.KindStorage, "failed to open file", err)
	}
	return f, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperr.Wrap(apperr.KindStorage, "failed to remove file", err)
	}
	return nil
}
