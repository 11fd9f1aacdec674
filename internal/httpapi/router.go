// Package httpapi exposes the zodiac, chart and interpretation services
// over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router wraps http.ServeMux with request logging.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleMethod registers h for one method; other methods get 405.
func (r *Router) HandleMethod(method, pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.Header().Set("Allow", method)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, req)
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id := req.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	r.mux.ServeHTTP(rec, req)

	r.logger.Info("http request",
		zap.String("request_id", id),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// RegisterRoutes wires every endpoint of h.
func (r *Router) RegisterRoutes(h *Handler) {
	r.HandleMethod(http.MethodGet, "/health", h.Health)
	r.HandleMethod(http.MethodGet, "/api", h.Index)
	r.HandleMethod(http.MethodPost, "/api/shengxiao", h.Shengxiao)
	r.HandleMethod(http.MethodPost, "/api/bazi", h.Bazi)
	r.HandleMethod(http.MethodPost, "/api/bazi/struct", h.BaziStruct)
	r.HandleMethod(http.MethodPost, "/api/complete", h.Complete)
	r.HandleMethod(http.MethodPost, "/api/ai-interpretation", h.Interpretation)
	r.HandleMethod(http.MethodPost, "/api/ai-interpretation-stream", h.InterpretationStream)
	r.HandleMethod(http.MethodPost, "/api/destiny-story", h.Story)
	r.HandleMethod(http.MethodPost, "/api/destiny-story-stream", h.StoryStream)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps event streams working through the recorder.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
