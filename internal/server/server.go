package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pagesift/pagesift/internal/crawler"
	"github.com/pagesift/pagesift/internal/extract"
	"github.com/pagesift/pagesift/internal/history"
	"github.com/pagesift/pagesift/internal/model"
)

// Server handles scrape requests over HTTP.
type Server struct {
	// engine runs the crawl jobs.
	engine *crawler.Engine

	// store archives completed jobs. Nil disables archiving.
	store *history.Store

	// logger receives request-level logging.
	logger *slog.Logger

	// version is reported on the root route.
	version string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHistory enables archiving of completed jobs.
func WithHistory(store *history.Store) ServerOption {
	return func(s *Server) {
		s.store = store
	}
}

// WithVersion sets the version string reported on the root route.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// New creates a Server around engine.
func New(engine *crawler.Engine, opts ...ServerOption) *Server {
	s := &Server{
		engine:  engine,
		version: "(devel)",
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/scrape", s.handleScrape)
	return mux
}

// handleRoot reports name and version.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "pagesift v%s\n", s.version)
}

// handleScrape runs one crawl job.
//
// Method: POST
// Path:   /scrape
// Body:   {"url": ..., "followLinks": ..., "maxDepth": ..., "searches": [...]}
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var job model.CrawlJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := job.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.Info("scrape request",
		"seed", job.URL,
		"follow", job.FollowLinks,
		"maxDepth", job.MaxDepth,
		"searches", len(job.Searches),
	)

	result, err := s.engine.Run(r.Context(), job)
	if err != nil {
		s.logger.Warn("scrape failed", "seed", job.URL, "error", err)
		s.writeError(w, statusForError(err), err)
		return
	}

	if s.store != nil {
		// Archiving is best-effort; the caller already has the result.
		if _, err := s.store.Save(r.Context(), job, result); err != nil {
			s.logger.Warn("failed to archive job", "seed", job.URL, "error", err)
		}
	}

	s.writeJSON(w, http.StatusOK, result.Table)
}

// statusForError maps engine errors to HTTP status codes:
// configuration errors are the caller's fault (400), fetch failures
// are the upstream site's (502).
func statusForError(err error) int {
	switch {
	case errors.Is(err, crawler.ErrMalformedSeed),
		errors.Is(err, crawler.ErrInvalidFollowPattern),
		errors.Is(err, extract.ErrInvalidSelector):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// writeJSON writes v as a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an {"error": ...} response.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
