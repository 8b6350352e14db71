// Package repository declares the storage contracts for images and filler
// words. Implementations live in subpackages named after their database.
package repository

import (
	"GalleryBackend/internal/model"
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record with the requested id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateFilePath is returned when an image with the same file path already exists.
	ErrDuplicateFilePath = errors.New("file path already exists")
)

type ImageRepository interface {
	// List returns all images ordered by id.
	List(ctx context.Context) ([]model.Image, error)
	// FindByDescription returns images whose description contains substr.
	FindByDescription(ctx context.Context, substr string) ([]model.Image, error)
	GetByID(ctx context.Context, id int64) (model.Image, error)
	// Create inserts img and sets its ID.
	Create(ctx context.Context, img *model.Image) error
	UpdateDescription(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) error
}

type FillerWordRepository interface {
	List(ctx context.Context) ([]model.FillerWord, error)
	GetByID(ctx context.Context, id int64) (model.FillerWord, error)
	// Create inserts w and sets its ID. Duplicate words are allowed.
	Create(ctx context.Context, w *model.FillerWord) error
	Update(ctx context.Context, id int64, word string) error
	Delete(ctx context.Context, id int64) error
}

// EscapeLike escapes the LIKE wildcards in s using backslash, for use with
// "LIKE ... ESCAPE '\'".
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
