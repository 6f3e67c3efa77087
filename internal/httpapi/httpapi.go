// Package httpapi exposes the ingest and search operations over HTTP.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lexisearch/lexisearch/internal/indexer"
	"github.com/lexisearch/lexisearch/internal/search"
)

// QueryObserver is notified of every search request's outcome and latency.
// *metrics.Metrics satisfies it.
type QueryObserver interface {
	ObserveQuery(outcome string, duration time.Duration)
}

// Server wires the Indexer and search.Service to HTTP handlers.
type Server struct {
	indexer  *indexer.Indexer
	search   *search.Service
	metrics  QueryObserver
	logger   *slog.Logger
	registry http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics attaches a QueryObserver. A nil observer is a legal no-op.
func WithMetrics(m QueryObserver) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMetricsHandler attaches the Prometheus scrape handler served at
// /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.registry = h }
}

// WithLogger overrides the server's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a Server. ix indexes documents; svc answers search queries
// against the same underlying InvertedIndex.
func New(ix *indexer.Indexer, svc *search.Service, opts ...Option) *Server {
	s := &Server{
		indexer: ix,
		search:  svc,
		logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the ServeMux routing every endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ingest/file", s.handleIngestFile)
	mux.HandleFunc("POST /ingest/dir", s.handleIngestDir)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.registry != nil {
		mux.Handle("GET /metrics", s.registry)
	}
	return mux
}

type ingestFileRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleIngestFile(w http.ResponseWriter, r *http.Request) {
	var req ingestFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	docID, err := s.indexer.IndexFile(req.Path)
	if err != nil {
		s.logger.Warn("ingest file failed", "path", req.Path, "err", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doc_id": docID})
}

type ingestDirRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleIngestDir(w http.ResponseWriter, r *http.Request) {
	var req ingestDirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	result, err := s.indexer.IndexDirectory(req.Path)
	if err != nil {
		s.logger.Warn("ingest directory failed", "path", req.Path, "err", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"indexed": result.Indexed,
		"skipped": len(result.Skipped),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query().Get("q")

	hits, err := s.search.Search(q)
	if err != nil {
		s.observeQuery("error", start)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome := "hit"
	if len(hits) == 0 {
		outcome = "zero_result"
		hits = s.search.RankedSuggestions(q)
	}
	s.observeQuery(outcome, start)
	writeJSON(w, http.StatusOK, map[string]any{"results": hits})
}

func (s *Server) observeQuery(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveQuery(outcome, time.Since(start))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
