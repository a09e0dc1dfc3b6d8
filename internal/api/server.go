package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/haikuwriter/internal/config"
	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/dgallion1/haikuwriter/internal/generator"
	"github.com/dgallion1/haikuwriter/internal/metrics"
	"github.com/dgallion1/haikuwriter/internal/pipeline"
	"github.com/dgallion1/haikuwriter/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog lists the corpora a deployment offers.
type Catalog interface {
	Entries() []corpus.Entry
}

// Server is the HTTP API server for haikuwriter.
type Server struct {
	router       chi.Router
	service      *generator.Service
	catalog      Catalog
	orchestrator *pipeline.Orchestrator
	stats        *stats.Window
	gatherer     prometheus.Gatherer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. A nil gatherer leaves
// /metrics unrouted.
func NewServer(svc *generator.Service, catalog Catalog, orch *pipeline.Orchestrator, st *stats.Window, gatherer prometheus.Gatherer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		service:      svc,
		catalog:      catalog,
		orchestrator: orch,
		stats:        st,
		gatherer:     gatherer,
		log:          log,
		cfg:          cfg,
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
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/corpora", s.handleListCorpora)
		r.Put("/api/selection", s.handleSelect)
		r.Get("/api/vocabulary", s.handleVocabulary)
		r.Delete("/api/vocabulary", s.handleResetVocabulary)
		r.Get("/api/haiku", s.handleHaiku)

		r.Post("/api/ingest", s.handleIngest)
		r.Post("/api/ingest/batch", s.handleBatchIngest)
		r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)

		r.Get("/api/stats/generation", s.handleGenerationStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
