package handler

import (
	"GalleryBackend/internal/service"
	"GalleryBackend/internal/web"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

func ListFillerWords(s service.FillerWordService, rnd *web.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		words, err := s.List(r.Context())
		if err != nil {
			writeError(w, r, log, err, "Failed to fetch filler words")
			return
		}
		render(w, rnd, web.PageFillerWords, web.FillerWordsData{Words: words}, log)
	}
}

// AddFillerWord stores the posted word. When the form also carries the
// keywords of a search, the client is sent back to that search.
func AddFillerWord(s service.FillerWordService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.Add(r.Context(), r.PostFormValue("word")); err != nil {
			writeError(w, r, log, err, "Failed to add filler word")
			return
		}

		if keywords := r.PostFormValue("keywords"); keywords != "" {
			http.Redirect(w, r, "/search?keyword="+url.QueryEscape(keywords), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/filler_words", http.StatusSeeOther)
	}
}

func EditFillerWord(s service.FillerWordService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idVar(r)
		if !ok {
			http.Error(w, "Invalid filler word id", http.StatusBadRequest)
			return
		}
		if _, err := s.Update(r.Context(), id, r.PostFormValue("word")); err != nil {
			writeError(w, r, log, err, "Failed to update filler word")
			return
		}
		http.Redirect(w, r, "/filler_words", http.StatusSeeOther)
	}
}

func DeleteFillerWord(s service.FillerWordService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idVar(r)
		if !ok {
			http.Error(w, "Invalid filler word id", http.StatusBadRequest)
			return
		}
		if err := s.Delete(r.Context(), id); err != nil {
			writeError(w, r, log, err, "Failed to delete filler word")
			return
		}
		http.Redirect(w, r, "/filler_words", http.StatusSeeOther)
	}
}
