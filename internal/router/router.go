package router

import (
	"GalleryBackend/internal/handler"
	"GalleryBackend/internal/service"
	"GalleryBackend/internal/storage"
	"GalleryBackend/internal/web"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Deps struct {
	Images        service.ImageService
	FillerWords   service.FillerWordService
	Store         storage.Store
	Renderer      *web.Renderer
	MaxUploadSize int64
	Log           *zap.Logger
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

func recoverMiddleware(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error("Panic in handler",
						zap.Any("panic", p),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func setCORSHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()

	r.Use(recoverMiddleware(d.Log))
	r.Use(loggingMiddleware(d.Log))

	r.HandleFunc("/", handler.Index(d.Images, d.Renderer, d.Log)).Methods("GET")
	r.HandleFunc("/add_image", handler.AddImage(d.Images, d.Renderer, d.MaxUploadSize, d.Log)).Methods("POST")
	r.HandleFunc("/edit/{id:[0-9]+}", handler.EditImage(d.Images, d.Log)).Methods("POST")
	r.HandleFunc("/delete/{id:[0-9]+}", handler.DeleteImage(d.Images, d.Log)).Methods("POST")

	r.HandleFunc("/uploads/images/{filename}", handler.ServeFile(d.Store, false, d.Log)).Methods("GET")
	r.HandleFunc("/uploads/thumbs/{filename}", handler.ServeFile(d.Store, false, d.Log)).Methods("GET")
	r.HandleFunc("/uploads/{filename}", handler.ServeFile(d.Store, true, d.Log)).Methods("GET")

	r.HandleFunc("/search", handler.SearchImages(d.Images, d.Renderer, d.Log)).Methods("GET", "POST")
	r.HandleFunc("/search/contains", handler.SearchContaining(d.Images, d.Renderer, d.Log)).Methods("GET")

	r.HandleFunc("/filler_words", handler.ListFillerWords(d.FillerWords, d.Renderer, d.Log)).Methods("GET")
	r.HandleFunc("/filler_words", handler.AddFillerWord(d.FillerWords, d.Log)).Methods("POST")
	r.HandleFunc("/filler_words/{id:[0-9]+}/edit", handler.EditFillerWord(d.FillerWords, d.Log)).Methods("POST")
	r.HandleFunc("/filler_words/{id:[0-9]+}/delete", handler.DeleteFillerWord(d.FillerWords, d.Log)).Methods("POST")

	r.HandleFunc("/health", handler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(setCORSHeaders)
	api.HandleFunc("/images", handler.ListImagesJSON(d.Images, d.Log)).Methods("GET", "OPTIONS")
	api.HandleFunc("/images", handler.UploadImageJSON(d.Images, d.MaxUploadSize, d.Log)).Methods("POST")
	api.HandleFunc("/search", handler.SearchJSON(d.Images, d.Log)).Methods("GET", "OPTIONS")

	return r
}
