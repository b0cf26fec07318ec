package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tiktok-planner/domain/repository"

	"github.com/spf13/afero"
)

// FileBlobStore keeps one JSON document per file. A single-slot deployment
// uses the configured path directly; other keys live next to it as
// <dir>/<key>.json.
type FileBlobStore struct {
	fs   afero.Fs
	path string
	key  string
	mu   sync.Mutex
}

// NewFileBlobStore stores defaultKey at path.
func NewFileBlobStore(fs afero.Fs, path, defaultKey string) repository.IBlobStore {
	return &FileBlobStore{fs: fs, path: path, key: defaultKey}
}

func (s *FileBlobStore) pathFor(key string) string {
	if key == s.key {
		return s.path
	}
	return filepath.Join(filepath.Dir(s.path), key+".json")
}

func (s *FileBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.pathFor(key), err)
	}
	return data, nil
}

// Set writes through a temp file and rename so a crash never leaves a
// half-written document.
func (s *FileBlobStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(key)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
