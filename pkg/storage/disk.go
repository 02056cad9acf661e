// Package storage persists uploaded image files behind a small interface so
// tests and future object-store backends can swap the implementation.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type FileStore interface {
	Save(name string, r io.Reader) (path string, err error)
	Remove(path string) error
	PublicURL(path string) string
}

type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStore) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func (s *DiskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *DiskStore) PublicURL(path string) string {
	return s.baseURL + "/uploads/" + filepath.Base(path)
}
