package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const maxNameAttempts = 5

var _ Store = (*LocalStore)(nil)

// LocalStore keeps files in a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed and returns a store rooted at it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}
	candidate := name
	for i := 0; i < maxNameAttempts; i++ {
		err := s.create(candidate, data)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		candidate = uniqueName(name)
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", name, maxNameAttempts)
}

func (s *LocalStore) create(name string, data []byte) error {
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	return f.Close()
}

func (s *LocalStore) Put(_ context.Context, name string, data []byte) error {
	if !validName(name) {
		return ErrInvalidName
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	return os.Open(filepath.Join(s.dir, name))
}

func (s *LocalStore) Exists(_ context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, ErrInvalidName
	}
	_, err := os.Stat(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// List returns the names of regular files in the directory, sorted.
func (s *LocalStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
