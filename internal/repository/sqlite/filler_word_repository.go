package sqlite

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Compile-time interface verification.
var _ repository.FillerWordRepository = (*FillerWordRepository)(nil)

// FillerWordRepository implements repository.FillerWordRepository using SQLite.
type FillerWordRepository struct {
	db *sql.DB
}

// NewFillerWordRepository creates a new FillerWordRepository.
func NewFillerWordRepository(db *sql.DB) *FillerWordRepository {
	return &FillerWordRepository{db: db}
}

// List returns all filler words ordered by id.
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

// GetByID retrieves a filler word by id.
func (r *FillerWordRepository) GetByID(ctx context.Context, id int64) (model.FillerWord, error) {
	var w model.FillerWord
	err := r.db.QueryRowContext(ctx, `SELECT id, word FROM filler_words WHERE id = ?`, id).Scan(&w.ID, &w.Word)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FillerWord{}, fmt.Errorf("filler word %d: %w", id, repository.ErrNotFound)
	}
	return w, err
}

// Create inserts w and sets its ID.
func (r *FillerWordRepository) Create(ctx context.Context, w *model.FillerWord) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO filler_words (word) VALUES (?)`, w.Word)
	if err != nil {
		return err
	}
	w.ID, err = res.LastInsertId()
	return err
}

// Update replaces the word of a filler word record.
func (r *FillerWordRepository) Update(ctx context.Context, id int64, word string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE filler_words SET word = ? WHERE id = ?`, word, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "filler word", id)
}

// Delete removes a filler word record.
func (r *FillerWordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM filler_words WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "filler word", id)
}
