package service

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"GalleryBackend/internal/search"
	"GalleryBackend/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

type ImageService interface {
	List(ctx context.Context) ([]model.Image, error)
	Get(ctx context.Context, id int64) (model.Image, error)
	Upload(ctx context.Context, filename string, content io.Reader, description string) (model.Image, error)
	UpdateDescription(ctx context.Context, id int64, description string) (model.Image, error)
	Delete(ctx context.Context, id int64) error
	SearchContaining(ctx context.Context, keyword string) ([]model.Image, error)
	Search(ctx context.Context, raw string, src search.Source) (search.Result, error)
}

type ImageOptions struct {
	MaxUploadSize int64
	ThumbSize     uint
}

type imageServiceImpl struct {
	images  repository.ImageRepository
	fillers repository.FillerWordRepository
	store   storage.Store
	opts    ImageOptions
	log     *zap.Logger
}

func NewImageService(images repository.ImageRepository, fillers repository.FillerWordRepository, store storage.Store, opts ImageOptions, log *zap.Logger) ImageService {
	return &imageServiceImpl{images: images, fillers: fillers, store: store, opts: opts, log: log}
}

func (s *imageServiceImpl) List(ctx context.Context) ([]model.Image, error) {
	return s.images.List(ctx)
}

func (s *imageServiceImpl) Get(ctx context.Context, id int64) (model.Image, error) {
	return s.images.GetByID(ctx, id)
}

// Upload validates and stores the file, writes its thumbnail and records
// the image. A file that cannot be thumbnailed is still accepted.
func (s *imageServiceImpl) Upload(ctx context.Context, filename string, content io.Reader, description string) (model.Image, error) {
	name, ok := uploadName(filename)
	if !ok {
		return model.Image{}, fmt.Errorf("%q: %w", filename, ErrUnsupportedFile)
	}

	data, err := io.ReadAll(io.LimitReader(content, s.opts.MaxUploadSize+1))
	if err != nil {
		return model.Image{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.opts.MaxUploadSize {
		return model.Image{}, fmt.Errorf("%q: %w", filename, ErrFileTooLarge)
	}

	stored, err := s.store.Save(ctx, name, data)
	if err != nil {
		return model.Image{}, fmt.Errorf("save %s: %w", name, err)
	}

	thumbed := true
	if err := s.writeThumb(ctx, stored, data); err != nil {
		thumbed = false
		s.log.Warn("Thumbnail not created", zap.String("file", stored), zap.Error(err))
	}

	img := model.Image{FilePath: stored, Description: description}
	if err := s.images.Create(ctx, &img); err != nil {
		s.removeFile(ctx, stored)
		if thumbed {
			s.removeFile(ctx, storage.ThumbName(stored))
		}
		return model.Image{}, err
	}

	s.log.Info("Image uploaded",
		zap.Int64("id", img.ID),
		zap.String("file", img.FilePath),
		zap.Int("size", len(data)))
	return img, nil
}

func (s *imageServiceImpl) writeThumb(ctx context.Context, name string, data []byte) error {
	thumb, err := storage.Thumbnail(data, name, s.opts.ThumbSize)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, storage.ThumbName(name), thumb)
}

func (s *imageServiceImpl) UpdateDescription(ctx context.Context, id int64, description string) (model.Image, error) {
	if err := s.images.UpdateDescription(ctx, id, description); err != nil {
		return model.Image{}, err
	}
	return s.images.GetByID(ctx, id)
}

// Delete removes the record first; files are removed afterwards and a
// failure there is only logged.
func (s *imageServiceImpl) Delete(ctx context.Context, id int64) error {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, img.FilePath)
	s.removeFile(ctx, storage.ThumbName(img.FilePath))
	return nil
}

func (s *imageServiceImpl) removeFile(ctx context.Context, name string) {
	err := s.store.Delete(ctx, name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error("Failed to remove file", zap.String("file", name), zap.Error(err))
	}
}

func (s *imageServiceImpl) SearchContaining(ctx context.Context, keyword string) ([]model.Image, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []model.Image{}, nil
	}
	return s.images.FindByDescription(ctx, keyword)
}

func (s *imageServiceImpl) Search(ctx context.Context, raw string, src search.Source) (search.Result, error) {
	fillers, err := s.fillers.List(ctx)
	if err != nil {
		return search.Result{}, fmt.Errorf("list filler words: %w", err)
	}
	images, err := s.images.List(ctx)
	if err != nil {
		return search.Result{}, fmt.Errorf("list images: %w", err)
	}
	return search.Search(raw, src, fillers, images), nil
}

// uploadName sanitizes a client file name. A name with no usable base, such
// as one written entirely in a non-Latin script, gets a generated base.
// Names that would be mistaken for generated thumbnails get a trailing
// underscore.
func uploadName(filename string) (string, bool) {
	if !storage.AllowedFile(filename) {
		return "", false
	}
	name := storage.SanitizeFilename(filename)
	if !storage.AllowedFile(name) || strings.TrimSuffix(name, filepath.Ext(name)) == "" {
		name = storage.GeneratedName(strings.ToLower(filepath.Ext(filename)))
	}
	if storage.IsThumb(name) {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "_" + ext
	}
	return name, true
}
