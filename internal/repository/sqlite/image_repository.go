// Package sqlite provides SQLite-backed repositories.
package sqlite

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ repository.ImageRepository = (*ImageRepository)(nil)

// ImageRepository implements repository.ImageRepository using SQLite.
type ImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new ImageRepository.
func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// List returns all images ordered by id.
func (r *ImageRepository) List(ctx context.Context) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, file_path, description FROM images ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

// FindByDescription returns images whose description contains substr.
// SQLite LIKE is case-insensitive for ASCII letters.
func (r *ImageRepository) FindByDescription(ctx context.Context, substr string) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, file_path, description
		FROM images
		WHERE description LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY id`, repository.EscapeLike(substr))
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

// GetByID retrieves an image by id.
func (r *ImageRepository) GetByID(ctx context.Context, id int64) (model.Image, error) {
	var img model.Image
	err := r.db.QueryRowContext(ctx, `SELECT id, file_path, description FROM images WHERE id = ?`, id).
		Scan(&img.ID, &img.FilePath, &img.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Image{}, fmt.Errorf("image %d: %w", id, repository.ErrNotFound)
	}
	return img, err
}

// Create inserts img and sets its ID.
func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO images (file_path, description) VALUES (?, ?)`, img.FilePath, img.Description)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return fmt.Errorf("image %q: %w", img.FilePath, repository.ErrDuplicateFilePath)
	}
	if err != nil {
		return err
	}
	img.ID, err = res.LastInsertId()
	return err
}

// UpdateDescription replaces the description of an image.
func (r *ImageRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE images SET description = ? WHERE id = ?`, description, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "image", id)
}

// Delete removes an image record.
func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "image", id)
}

func scanImages(rows *sql.Rows) ([]model.Image, error) {
	defer rows.Close()

	images := []model.Image{}
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.FilePath, &img.Description); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

// expectOneRow reports ErrNotFound when a write touched no rows.
func expectOneRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}
