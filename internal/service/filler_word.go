package service

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var ErrEmptyWord = errors.New("filler word cannot be empty")

type FillerWordService interface {
	List(ctx context.Context) ([]model.FillerWord, error)
	Get(ctx context.Context, id int64) (model.FillerWord, error)
	Add(ctx context.Context, word string) (model.FillerWord, error)
	Update(ctx context.Context, id int64, word string) (model.FillerWord, error)
	Delete(ctx context.Context, id int64) error
}

type fillerWordServiceImpl struct {
	repo repository.FillerWordRepository
	log  *zap.Logger
}

func NewFillerWordService(repo repository.FillerWordRepository, log *zap.Logger) FillerWordService {
	return &fillerWordServiceImpl{repo: repo, log: log}
}

func (s *fillerWordServiceImpl) List(ctx context.Context) ([]model.FillerWord, error) {
	return s.repo.List(ctx)
}

func (s *fillerWordServiceImpl) Get(ctx context.Context, id int64) (model.FillerWord, error) {
	return s.repo.GetByID(ctx, id)
}

// Add stores word as a new record even if the same word already exists.
func (s *fillerWordServiceImpl) Add(ctx context.Context, word string) (model.FillerWord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return model.FillerWord{}, ErrEmptyWord
	}
	w := model.FillerWord{Word: word}
	if err := s.repo.Create(ctx, &w); err != nil {
		return model.FillerWord{}, err
	}
	s.log.Info("Filler word added", zap.Int64("id", w.ID), zap.String("word", w.Word))
	return w, nil
}

func (s *fillerWordServiceImpl) Update(ctx context.Context, id int64, word string) (model.FillerWord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return model.FillerWord{}, ErrEmptyWord
	}
	if err := s.repo.Update(ctx, id, word); err != nil {
		return model.FillerWord{}, err
	}
	return model.FillerWord{ID: id, Word: word}, nil
}

func (s *fillerWordServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
