package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/virtualboard/orf/internal/route"
)

// Defaults applied to requests that omit mode or range.
type Defaults struct {
	Mode         route.Mode
	Range        route.Range
	MaxBodyBytes int64
}

// Server is the HTTP API for formatting pasted route text.
type Server struct {
	router   chi.Router
	log      *logrus.Entry
	defaults Defaults
}

// NewServer creates and configures the HTTP server.
func NewServer(log *logrus.Entry, defaults Defaults) *Server {
	if defaults.Mode == "" {
		defaults.Mode = route.DefaultMode
	}
	if defaults.MaxBodyBytes <= 0 {
		defaults.MaxBodyBytes = 1 << 20
	}
	s := &Server{
		log:      log.WithField("component", "api"),
		defaults: defaults,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/format", s.handleFormat)
	r.Post("/api/extract", s.handleExtract)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
