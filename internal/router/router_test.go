package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"GalleryBackend/config"
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/repository/sqlite"
	"GalleryBackend/internal/router"
	"GalleryBackend/internal/service"
	"GalleryBackend/internal/storage"
	"GalleryBackend/internal/web"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type app struct {
	router  *mux.Router
	images  service.ImageService
	fillers service.FillerWordService
}

func setupApp(t *testing.T) app {
	t.Helper()

	db, err := config.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	rnd, err := web.NewRenderer()
	require.NoError(t, err)

	log := zap.NewNop()
	imageRepo := sqlite.NewImageRepository(db)
	fillerRepo := sqlite.NewFillerWordRepository(db)
	images := service.NewImageService(imageRepo, fillerRepo, store, service.ImageOptions{MaxUploadSize: 1 << 20, ThumbSize: 16}, log)
	fillers := service.NewFillerWordService(fillerRepo, log)

	return app{
		router: router.NewRouter(router.Deps{
			Images:        images,
			FillerWords:   fillers,
			Store:         store,
			Renderer:      rnd,
			MaxUploadSize: 1 << 20,
			Log:           log,
		}),
		images:  images,
		fillers: fillers,
	}
}

func (a app) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, path, filename, description string) *http.Request {
	t.Helper()

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("description", description))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("redirects to index and lists the image", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(uploadRequest(t, "/add_image", "cat.png", "cat,outdoor"))
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		rec = a.do(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/uploads/images/cat.png")
	})

	t.Run("accepts file names without Latin letters", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		for _, filename := range []string{"фото.jpg", "猫.png"} {
			rec := a.do(uploadRequest(t, "/add_image", filename, "cat"))
			require.Equal(t, http.StatusFound, rec.Code, filename)
		}

		images, err := a.images.List(context.Background())
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Regexp(t, `^[0-9a-f]{8}\.jpg$`, images[0].FilePath)
		assert.Regexp(t, `^[0-9a-f]{8}\.png$`, images[1].FilePath)

		rec := a.do(httptest.NewRequest(http.MethodGet, "/uploads/images/"+images[0].FilePath, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("silently ignores disallowed extensions", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(uploadRequest(t, "/add_image", "evil.exe", "cat"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No images yet.")

		images, err := a.images.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, images)
	})

	t.Run("api returns the created image", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(uploadRequest(t, "/api/images", "dog.gif", "dog"))
		require.Equal(t, http.StatusCreated, rec.Code)

		var img model.Image
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&img))
		assert.Equal(t, "dog.gif", img.FilePath)
		assert.Equal(t, "dog", img.Description)
	})

	t.Run("api rejects disallowed extensions", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(uploadRequest(t, "/api/images", "notes.txt", "dog"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServeFile(t *testing.T) {
	t.Parallel()

	a := setupApp(t)
	require.Equal(t, http.StatusFound, a.do(uploadRequest(t, "/add_image", "cat.png", "cat")).Code)

	t.Run("downloads as attachment", func(t *testing.T) {
		rec := a.do(httptest.NewRequest(http.MethodGet, "/uploads/cat.png", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=cat.png", rec.Header().Get("Content-Disposition"))
		assert.NotZero(t, rec.Body.Len())
	})

	t.Run("serves inline images and thumbnails", func(t *testing.T) {
		for _, path := range []string{"/uploads/images/cat.png", "/uploads/thumbs/cat_thumb.png"} {
			rec := a.do(httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code, path)
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
		}
	})

	t.Run("returns 404 for missing files", func(t *testing.T) {
		rec := a.do(httptest.NewRequest(http.MethodGet, "/uploads/images/dog.png", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	a := setupApp(t)
	require.Equal(t, http.StatusFound, a.do(uploadRequest(t, "/add_image", "cat.png", "cat,outdoor")).Code)
	_, err := a.fillers.Add(context.Background(), "the")
	require.NoError(t, err)

	t.Run("renders a section per significant word", func(t *testing.T) {
		rec := a.do(httptest.NewRequest(http.MethodGet, "/search?keyword="+url.QueryEscape("the cat dog"), nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "<h2>cat</h2>")
		assert.Contains(t, body, "<h2>dog</h2>")
		assert.NotContains(t, body, "<h2>the</h2>")
		assert.Contains(t, body, "/uploads/images/cat.png")
	})

	t.Run("accepts form posts", func(t *testing.T) {
		rec := a.do(formRequest("/search", url.Values{"keyword": {"cat's"}}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h2>cat</h2>")
	})

	t.Run("treats an absent keyword as an empty search", func(t *testing.T) {
		rec := a.do(httptest.NewRequest(http.MethodGet, "/search", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Nothing to search for.")
	})

	t.Run("substring search matches inside tags", func(t *testing.T) {
		rec := a.do(httptest.NewRequest(http.MethodGet, "/search/contains?keyword=door", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/uploads/images/cat.png")
	})

	t.Run("api returns keywords and results", func(t *testing.T) {
		rec := a.do(httptest.NewRequest(http.MethodGet, "/api/search?keyword=cat+dog", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Keywords []string                 `json:"keywords"`
			Results  map[string][]model.Image `json:"results"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, []string{"cat", "dog"}, got.Keywords)
		require.Len(t, got.Results["cat"], 1)
		assert.Equal(t, "cat.png", got.Results["cat"][0].FilePath)
		assert.Empty(t, got.Results["dog"])
	})
}

func TestEditAndDeleteImage(t *testing.T) {
	t.Parallel()

	a := setupApp(t)
	require.Equal(t, http.StatusFound, a.do(uploadRequest(t, "/add_image", "cat.png", "cat")).Code)
	images, err := a.images.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 1)
	id := images[0].ID

	rec := a.do(formRequest("/edit/"+itoa(id), url.Values{"description": {"dog"}}))
	require.Equal(t, http.StatusFound, rec.Code)

	img, err := a.images.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "dog", img.Description)
	assert.Equal(t, "cat.png", img.FilePath)

	assert.Equal(t, http.StatusNotFound, a.do(formRequest("/edit/999", url.Values{"description": {"x"}})).Code)

	require.Equal(t, http.StatusFound, a.do(formRequest("/delete/"+itoa(id), nil)).Code)
	assert.Equal(t, http.StatusNotFound, a.do(formRequest("/delete/"+itoa(id), nil)).Code)
}

func TestFillerWords(t *testing.T) {
	t.Parallel()

	t.Run("add redirects back into the search", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(formRequest("/filler_words", url.Values{"word": {"the"}, "keywords": {"the cat"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/search?keyword=the+cat", rec.Header().Get("Location"))
	})

	t.Run("add without keywords goes to the list", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(formRequest("/filler_words", url.Values{"word": {"a"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/filler_words", rec.Header().Get("Location"))

		rec = a.do(httptest.NewRequest(http.MethodGet, "/filler_words", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="a"`)
	})

	t.Run("rejects empty words", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		rec := a.do(formRequest("/filler_words", url.Values{"word": {" "}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("edit and delete report missing ids", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		assert.Equal(t, http.StatusNotFound, a.do(formRequest("/filler_words/3/edit", url.Values{"word": {"a"}})).Code)
		assert.Equal(t, http.StatusNotFound, a.do(formRequest("/filler_words/3/delete", nil)).Code)
	})

	t.Run("edit then delete", func(t *testing.T) {
		t.Parallel()

		a := setupApp(t)
		w, err := a.fillers.Add(context.Background(), "teh")
		require.NoError(t, err)

		rec := a.do(formRequest("/filler_words/"+itoa(w.ID)+"/edit", url.Values{"word": {"the"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		got, err := a.fillers.Get(context.Background(), w.ID)
		require.NoError(t, err)
		assert.Equal(t, "the", got.Word)

		rec = a.do(formRequest("/filler_words/"+itoa(w.ID)+"/delete", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		words, err := a.fillers.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, words)
	})
}

func TestHealthAndCORS(t *testing.T) {
	t.Parallel()

	a := setupApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodOptions, "/api/images", nil)
	req.Header.Set("Origin", "http://example.com")
	rec = a.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
