package handler_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"GalleryBackend/internal/handler"
	"GalleryBackend/internal/mock"
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository"
	"GalleryBackend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func imageService(images *mock.ImageRepository) service.ImageService {
	return service.NewImageService(images, &mock.FillerWordRepository{}, &mock.Store{},
		service.ImageOptions{MaxUploadSize: 1 << 20, ThumbSize: 16}, zap.NewNop())
}

func TestListImagesJSON(t *testing.T) {
	t.Parallel()

	t.Run("repository failure is a 500", func(t *testing.T) {
		t.Parallel()

		repo := &mock.ImageRepository{
			ListFn: func(ctx context.Context) ([]model.Image, error) {
				return nil, errors.New("connection reset")
			},
		}
		rec := httptest.NewRecorder()
		handler.ListImagesJSON(imageService(repo), zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/api/images", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to fetch images")
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("returns images as JSON", func(t *testing.T) {
		t.Parallel()

		repo := &mock.ImageRepository{
			ListFn: func(ctx context.Context) ([]model.Image, error) {
				return []model.Image{{ID: 1, FilePath: "a.png", Description: "cat"}}, nil
			},
		}
		rec := httptest.NewRecorder()
		handler.ListImagesJSON(imageService(repo), zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/api/images", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `[{"id":1,"file_path":"a.png","description":"cat"}]`, rec.Body.String())
	})
}

func TestEditImage(t *testing.T) {
	t.Parallel()

	edit := func(repo *mock.ImageRepository, id string) *httptest.ResponseRecorder {
		form := url.Values{"description": {"dog"}}
		req := httptest.NewRequest(http.MethodPost, "/edit/"+id, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req = mux.SetURLVars(req, map[string]string{"id": id})
		rec := httptest.NewRecorder()
		handler.EditImage(imageService(repo), zap.NewNop())(rec, req)
		return rec
	}

	t.Run("missing image is a 404", func(t *testing.T) {
		t.Parallel()

		repo := &mock.ImageRepository{
			UpdateDescriptionFn: func(ctx context.Context, id int64, description string) error {
				return repository.ErrNotFound
			},
		}
		assert.Equal(t, http.StatusNotFound, edit(repo, "7").Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusBadRequest, edit(&mock.ImageRepository{}, "x").Code)
	})

	t.Run("redirects home on success", func(t *testing.T) {
		t.Parallel()

		var got string
		repo := &mock.ImageRepository{
			UpdateDescriptionFn: func(ctx context.Context, id int64, description string) error {
				got = description
				return nil
			},
			GetByIDFn: func(ctx context.Context, id int64) (model.Image, error) {
				return model.Image{ID: id, FilePath: "a.png", Description: got}, nil
			},
		}
		rec := edit(repo, "3")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, "dog", got)
	})
}

func TestServeFile(t *testing.T) {
	t.Parallel()

	store := &mock.Store{
		OpenFn: func(ctx context.Context, name string) (io.ReadCloser, error) {
			if name != "cat.png" {
				return nil, fs.ErrNotExist
			}
			return io.NopCloser(strings.NewReader("PNGDATA")), nil
		},
	}

	serve := func(name string, attachment bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/uploads/"+name, nil)
		req = mux.SetURLVars(req, map[string]string{"filename": name})
		rec := httptest.NewRecorder()
		handler.ServeFile(store, attachment, zap.NewNop())(rec, req)
		return rec
	}

	t.Run("inline", func(t *testing.T) {
		t.Parallel()

		rec := serve("cat.png", false)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "PNGDATA", rec.Body.String())
	})

	t.Run("attachment", func(t *testing.T) {
		t.Parallel()

		rec := serve("cat.png", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=cat.png", rec.Header().Get("Content-Disposition"))
	})

	t.Run("missing file is a 404", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusNotFound, serve("dog.png", false).Code)
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}
