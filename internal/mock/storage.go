package mock

import (
	"GalleryBackend/internal/storage"
	"context"
	"io"
)

var _ storage.Store = (*Store)(nil)

// Store is a mock implementation of storage.Store.
type Store struct {
	SaveFn   func(ctx context.Context, name string, data []byte) (string, error)
	PutFn    func(ctx context.Context, name string, data []byte) error
	OpenFn   func(ctx context.Context, name string) (io.ReadCloser, error)
	ExistsFn func(ctx context.Context, name string) (bool, error)
	DeleteFn func(ctx context.Context, name string) error
	ListFn   func(ctx context.Context) ([]string, error)
}

func (s *Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	return s.SaveFn(ctx, name, data)
}

func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.PutFn(ctx, name, data)
}

func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.OpenFn(ctx, name)
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	return s.ExistsFn(ctx, name)
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.DeleteFn(ctx, name)
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}
