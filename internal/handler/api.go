package handler

import (
	"GalleryBackend/internal/search"
	"GalleryBackend/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

func ListImagesJSON(s service.ImageService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := s.List(r.Context())
		if err != nil {
			writeError(w, r, log, err, "Failed to fetch images")
			return
		}
		writeJSON(w, http.StatusOK, images, log)
	}
}

func UploadImageJSON(s service.ImageService, maxUpload int64, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "No image file provided", http.StatusBadRequest)
			return
		}
		defer file.Close()

		img, err := s.Upload(r.Context(), header.Filename, file, r.FormValue("description"))
		if err != nil {
			writeError(w, r, log, err, "Failed to upload image")
			return
		}
		writeJSON(w, http.StatusCreated, img, log)
	}
}

func SearchJSON(s service.ImageService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.Search(r.Context(), r.URL.Query().Get("keyword"), search.FromURL)
		if err != nil {
			writeError(w, r, log, err, "Failed to search images")
			return
		}
		writeJSON(w, http.StatusOK, res, log)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"OK"}`))
}

func writeJSON(w http.ResponseWriter, status int, v any, log *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode JSON", zap.Error(err))
	}
}
