package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as plain files under a single directory.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) path(key string) string {
	// Keys are opaque names we generated ourselves; Base guards against a
	// corrupted key escaping the upload directory.
	return filepath.Join(s.Dir, filepath.Base(key))
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) error {
	dst, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(s.path(key))
		return err
	}
	return nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(s.path(key))
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	return os.Remove(s.path(key))
}
