package postgres

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var _ repository.ImageRepository = (*ImageRepository)(nil)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) List(ctx context.Context) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, file_path, description FROM images ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

func (r *ImageRepository) FindByDescription(ctx context.Context, substr string) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, file_path, description
		FROM images
		WHERE description ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY id`, repository.EscapeLike(substr))
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (model.Image, error) {
	var img model.Image
	err := r.db.QueryRowContext(ctx, `SELECT id, file_path, description FROM images WHERE id = $1`, id).
		Scan(&img.ID, &img.FilePath, &img.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Image{}, fmt.Errorf("image %d: %w", id, repository.ErrNotFound)
	}
	return img, err
}

func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO images (file_path, description) VALUES ($1, $2) RETURNING id`,
		img.FilePath, img.Description).Scan(&img.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("image %q: %w", img.FilePath, repository.ErrDuplicateFilePath)
	}
	return err
}

func (r *ImageRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE images SET description = $1 WHERE id = $2`, description, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "image", id)
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
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
