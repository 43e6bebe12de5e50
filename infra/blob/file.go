package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage keeps each namespace in <dir>/<namespace>.json.
type FileStorage struct {
	dir string
}

// NewFileStorage creates dir if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(ns string) string {
	return filepath.Join(f.dir, ns+".json")
}

// ReadBlob returns ok=false when the namespace was never written.
func (f *FileStorage) ReadBlob(ns string) (string, bool, error) {
	if err := ValidateNamespace(ns); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.path(ns))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading blob %s: %w", ns, err)
	}
	return string(data), true, nil
}

// WriteBlob replaces the namespace file atomically via a temp file and rename.
func (f *FileStorage) WriteBlob(ns, data string) error {
	if err := ValidateNamespace(ns); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ns+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing blob %s: %w", ns, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing blob %s: %w", ns, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing blob %s: %w", ns, err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("chmod blob %s: %w", ns, err)
	}
	if err := os.Rename(tmpPath, f.path(ns)); err != nil {
		return fmt.Errorf("replacing blob %s: %w", ns, err)
	}
	return nil
}
