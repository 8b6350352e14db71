// Package mock provides function-field implementations of the repository
// and storage interfaces for tests.
package mock

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"context"
)

var _ repository.ImageRepository = (*ImageRepository)(nil)

// ImageRepository is a mock implementation of repository.ImageRepository.
type ImageRepository struct {
	ListFn              func(ctx context.Context) ([]model.Image, error)
	FindByDescriptionFn func(ctx context.Context, substr string) ([]model.Image, error)
	GetByIDFn           func(ctx context.Context, id int64) (model.Image, error)
	CreateFn            func(ctx context.Context, img *model.Image) error
	UpdateDescriptionFn func(ctx context.Context, id int64, description string) error
	DeleteFn            func(ctx context.Context, id int64) error
}

func (r *ImageRepository) List(ctx context.Context) ([]model.Image, error) {
	return r.ListFn(ctx)
}

func (r *ImageRepository) FindByDescription(ctx context.Context, substr string) ([]model.Image, error) {
	return r.FindByDescriptionFn(ctx, substr)
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (model.Image, error) {
	return r.GetByIDFn(ctx, id)
}

func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	return r.CreateFn(ctx, img)
}

func (r *ImageRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	return r.UpdateDescriptionFn(ctx, id, description)
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	return r.DeleteFn(ctx, id)
}

var _ repository.FillerWordRepository = (*FillerWordRepository)(nil)

// FillerWordRepository is a mock implementation of repository.FillerWordRepository.
type FillerWordRepository struct {
	ListFn    func(ctx context.Context) ([]model.FillerWord, error)
	GetByIDFn func(ctx context.Context, id int64) (model.FillerWord, error)
	CreateFn  func(ctx context.Context, w *model.FillerWord) error
	UpdateFn  func(ctx context.Context, id int64, word string) error
	DeleteFn  func(ctx context.Context, id int64) error
}

func (r *FillerWordRepository) List(ctx context.Context) ([]model.FillerWord, error) {
	return r.ListFn(ctx)
}

func (r *FillerWordRepository) GetByID(ctx context.Context, id int64) (model.FillerWord, error) {
	return r.GetByIDFn(ctx, id)
}

func (r *FillerWordRepository) Create(ctx context.Context, w *model.FillerWord) error {
	return r.CreateFn(ctx, w)
}

func (r *FillerWordRepository) Update(ctx context.Context, id int64, word string) error {
	return r.UpdateFn(ctx, id, word)
}

func (r *FillerWordRepository) Delete(ctx context.Context, id int64) error {
	return r.DeleteFn(ctx, id)
}
