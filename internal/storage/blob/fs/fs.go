package fs

import (
	"context"
	"os"
	"path"
	"sort"
	"strings"

	"photoboard/internal/storage"

	"github.com/spf13/afero"
)

// Store is a blob.ObjectStore over an afero filesystem, rooted at baseDir.
// Used for the local environment and as the in-memory test double; object
// keys map directly to file names under the root.
type Store struct {
	fs      afero.Fs
	baseDir string
}

func New(fs afero.Fs, baseDir string) (*Store, error) {
	if err := fs.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{fs: fs, baseDir: baseDir}, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	return afero.Exists(s.fs, s.path(key))
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return afero.WriteFile(s.fs, s.path(key), data, 0644)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.fs.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return storage.ErrObjectNotFound
		}
		return err
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			keys = append(keys, entry.Name())
		}
	}
	sort.Strings(keys)

	return keys, nil
}

func (s *Store) path(key string) string {
	return path.Join(s.baseDir, key)
}
