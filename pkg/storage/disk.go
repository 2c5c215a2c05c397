package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// DiskStore keeps objects as files under a root directory.
type DiskStore struct {
	fs afero.Fs
}

// NewDiskStore roots a DiskStore at dir on the OS filesystem.
func NewDiskStore(dir string) *DiskStore {
	return NewFsStore(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewFsStore wraps any afero filesystem, e.g. afero.NewMemMapFs in tests.
func NewFsStore(fsys afero.Fs) *DiskStore {
	return &DiskStore{fs: fsys}
}

func (s *DiskStore) Put(ctx context.Context, key, _ string, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Clean("/" + key)
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := s.fs.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return f.Close()
}

func (s *DiskStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Clean("/" + key)
	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", key, ErrNotExist)
	}
	f, err := s.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	return f, nil
}
