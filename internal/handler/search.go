package handler

import (
	"GalleryBackend/internal/search"
	"GalleryBackend/internal/service"
	"GalleryBackend/internal/web"
	"net/http"

	"go.uber.org/zap"
)

// SearchImages renders the keyword search. GET reads the keyword from the
// URL, POST from the form; the two are normalized differently.
func SearchImages(s service.ImageService, rnd *web.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword, src := r.URL.Query().Get("keyword"), search.FromURL
		if r.Method == http.MethodPost {
			keyword, src = r.PostFormValue("keyword"), search.FromForm
		}

		res, err := s.Search(r.Context(), keyword, src)
		if err != nil {
			writeError(w, r, log, err, "Failed to search images")
			return
		}

		log.Debug("Search", zap.String("keyword", keyword), zap.Strings("words", res.Keywords))
		render(w, rnd, web.PageSearchResults, web.SearchData{Query: keyword, Result: res}, log)
	}
}

// SearchContaining lists images whose description contains the keyword.
func SearchContaining(s service.ImageService, rnd *web.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := r.URL.Query().Get("keyword")

		images, err := s.SearchContaining(r.Context(), keyword)
		if err != nil {
			writeError(w, r, log, err, "Failed to search images")
			return
		}

		render(w, rnd, web.PageSearchResults, web.SearchData{Query: keyword, Contains: true, Images: images}, log)
	}
}

func render(w http.ResponseWriter, rnd *web.Renderer, page string, data any, log *zap.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rnd.Render(w, page, data); err != nil {
		log.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
