package postgres

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var _ repository.FillerWordRepository = (*FillerWordRepository)(nil)

type FillerWordRepository struct {
	db *sql.DB
}

func NewFillerWordRepository(db *sql.DB) *FillerWordRepository {
	return &FillerWordRepository{db: db}
}

func (r *FillerWordRepository) List(ctx context.Context) ([]model.FillerWord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, word FROM filler_words ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []model.FillerWord{}
	for rows.Next() {
		var w model.FillerWord
		if err := rows.Scan(&w.ID, &w.Word); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (r *FillerWordRepository) GetByID(ctx context.Context, id int64) (model.FillerWord, error) {
	var w model.FillerWord
	err := r.db.QueryRowContext(ctx, `SELECT id, word FROM filler_words WHERE id = $1`, id).Scan(&w.ID, &w.Word)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FillerWord{}, fmt.Errorf("filler word %d: %w", id, repository.ErrNotFound)
	}
	return w, err
}

func (r *FillerWordRepository) Create(ctx context.Context, w *model.FillerWord) error {
	return r.db.QueryRowContext(ctx, `INSERT INTO filler_words (word) VALUES ($1) RETURNING id`, w.Word).Scan(&w.ID)
}

func (r *FillerWordRepository) Update(ctx context.Context, id int64, word string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE filler_words SET word = $1 WHERE id = $2`, word, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "filler word", id)
}

func (r *FillerWordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM filler_words WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "filler word", id)
}
