package handler

import (
	"GalleryBackend/internal/service"
	"GalleryBackend/internal/storage"
	"GalleryBackend/internal/web"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// multipart overhead allowed on top of the file size limit
const formOverhead = 1 << 20

func Index(s service.ImageService, rnd *web.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderIndex(w, r, s, rnd, log)
	}
}

func renderIndex(w http.ResponseWriter, r *http.Request, s service.ImageService, rnd *web.Renderer, log *zap.Logger) {
	images, err := s.List(r.Context())
	if err != nil {
		writeError(w, r, log, err, "Failed to fetch images")
		return
	}
	render(w, rnd, web.PageIndex, web.IndexData{Images: images}, log)
}

// AddImage handles the upload form. A missing file or a file with a
// disallowed extension re-renders the index without creating anything.
func AddImage(s service.ImageService, rnd *web.Renderer, maxUpload int64, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			log.Info("Upload without file", zap.Error(err))
			renderIndex(w, r, s, rnd, log)
			return
		}
		defer file.Close()

		_, err = s.Upload(r.Context(), header.Filename, file, r.FormValue("description"))
		if errors.Is(err, service.ErrUnsupportedFile) {
			log.Info("Ignoring upload", zap.String("filename", header.Filename))
			renderIndex(w, r, s, rnd, log)
			return
		}
		if err != nil {
			writeError(w, r, log, err, "Failed to upload image")
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func EditImage(s service.ImageService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idVar(r)
		if !ok {
			http.Error(w, "Invalid image id", http.StatusBadRequest)
			return
		}
		if _, err := s.UpdateDescription(r.Context(), id, r.PostFormValue("description")); err != nil {
			writeError(w, r, log, err, "Failed to update image")
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func DeleteImage(s service.ImageService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idVar(r)
		if !ok {
			http.Error(w, "Invalid image id", http.StatusBadRequest)
			return
		}
		if err := s.Delete(r.Context(), id); err != nil {
			writeError(w, r, log, err, "Failed to delete image")
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// ServeFile streams a stored file. With attachment set the browser is asked
// to download it instead of displaying it.
func ServeFile(store storage.Store, attachment bool, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["filename"]

		rc, err := store.Open(r.Context(), name)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, storage.ErrInvalidName) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Error("Failed to open file", zap.String("file", name), zap.Error(err))
			http.Error(w, "Failed to open file", http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		if attachment {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		}
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn("Failed to write file", zap.String("file", name), zap.Error(err))
		}
	}
}
