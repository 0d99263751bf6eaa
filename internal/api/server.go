package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/mdchunk/internal/cache"
	"github.com/dgallion1/mdchunk/internal/config"
	"github.com/dgallion1/mdchunk/internal/metrics"
	"github.com/dgallion1/mdchunk/internal/render"
	"github.com/dgallion1/mdchunk/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API for uploading and parsing Markdown documents.
type Server struct {
	router  chi.Router
	store   *store.Store
	results *cache.Cache[*document]
	metrics *metrics.Recorder
	preview *render.Previewer
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, rec *metrics.Recorder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:   st,
		results: cache.New[*document](cfg.CacheTTL),
		metrics: rec,
		preview: render.NewPreviewer(),
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

// Start launches cache cleanup and, when enabled, the upload directory
// watcher. Both stop when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	go s.results.Run(ctx, time.Minute)

	if !s.cfg.WatchUploads {
		return nil
	}
	return s.store.Watch(ctx, s.log, s.results.Invalidate)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.CORSOrigin))

	// Public endpoints.
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/files", s.handleListFiles)
		r.Post("/upload", s.handleUpload)
		r.Get("/files/{name}", s.handleGetFile)
		r.Delete("/files/{name}", s.handleDeleteFile)
		r.Get("/files/{name}/table", s.handleFileTables)
		r.Get("/files/{name}/chunks", s.handleFileChunks)
		r.Get("/files/{name}/analysis", s.handleFileAnalysis)
		r.Get("/files/{name}/preview", s.handleFilePreview)

		r.Post("/api/parse", s.handleParse)
		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Markdown File Upload API"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
