package handler

import (
	"GalleryBackend/internal/repository"
	"GalleryBackend/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateFilePath):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnsupportedFile), errors.Is(err, service.ErrEmptyWord):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and answers with a short message. Internal details
// are only logged.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, msg, status)
		return
	}
	log.Info(msg, zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	http.Error(w, http.StatusText(status), status)
}

func idVar(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}
