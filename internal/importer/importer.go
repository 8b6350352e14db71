// Package importer reconciles the image table with the files in storage.
package importer

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"GalleryBackend/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const thumbWorkers = 4

type Report struct {
	Removed    int `json:"removed"`
	Added      int `json:"added"`
	Thumbnails int `json:"thumbnails"`
}

type Importer struct {
	images    repository.ImageRepository
	store     storage.Store
	thumbSize uint
	log       *zap.Logger
}

func New(images repository.ImageRepository, store storage.Store, thumbSize uint, log *zap.Logger) *Importer {
	return &Importer{images: images, store: store, thumbSize: thumbSize, log: log}
}

// Sync drops rows whose file is gone, registers untracked image files with
// an empty description and writes any missing thumbnails.
func (im *Importer) Sync(ctx context.Context) (Report, error) {
	var rep Report

	im.log.Info("Step 1: Checking for file existence")
	names, err := im.store.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("list files: %w", err)
	}
	onDisk := make(map[string]bool, len(names))
	for _, n := range names {
		onDisk[n] = true
	}

	rows, err := im.images.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("list images: %w", err)
	}
	tracked := make(map[string]bool, len(rows))
	for _, img := range rows {
		if onDisk[img.FilePath] {
			tracked[img.FilePath] = true
			continue
		}
		im.log.Info("Deleting entry", zap.Int64("id", img.ID), zap.String("file", img.FilePath))
		if err := im.images.Delete(ctx, img.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return rep, fmt.Errorf("delete image %d: %w", img.ID, err)
		}
		rep.Removed++
	}

	im.log.Info("Step 2: Adding new files")
	var originals []string
	for _, n := range names {
		if !storage.AllowedFile(n) || storage.IsThumb(n) {
			continue
		}
		originals = append(originals, n)
		if tracked[n] {
			continue
		}
		img := model.Image{FilePath: n}
		err := im.images.Create(ctx, &img)
		if errors.Is(err, repository.ErrDuplicateFilePath) {
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("add %s: %w", n, err)
		}
		im.log.Info("Image added", zap.Int64("id", img.ID), zap.String("file", n))
		rep.Added++
	}

	im.log.Info("Step 3: Creating missing thumbnails")
	var made atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(thumbWorkers)
	for _, n := range originals {
		if onDisk[storage.ThumbName(n)] {
			continue
		}
		g.Go(func() error {
			if err := im.thumbnail(gctx, n); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				im.log.Warn("Thumbnail not created", zap.String("file", n), zap.Error(err))
				return nil
			}
			made.Add(1)
			return nil
		})
	}
	err = g.Wait()
	rep.Thumbnails = int(made.Load())
	if err != nil {
		return rep, err
	}

	im.log.Info("Sync finished",
		zap.Int("removed", rep.Removed),
		zap.Int("added", rep.Added),
		zap.Int("thumbnails", rep.Thumbnails))
	return rep, nil
}

func (im *Importer) thumbnail(ctx context.Context, name string) error {
	rc, err := im.store.Open(ctx, name)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return err
	}
	thumb, err := storage.Thumbnail(data, name, im.thumbSize)
	if err != nil {
		return err
	}
	return im.store.Put(ctx, storage.ThumbName(name), thumb)
}
