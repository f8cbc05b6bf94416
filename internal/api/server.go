package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/clinsum/internal/config"
	"github.com/dgallion1/clinsum/internal/metrics"
	"github.com/dgallion1/clinsum/internal/report"
	"github.com/dgallion1/clinsum/internal/summarize"
	"github.com/dgallion1/clinsum/internal/taxonomy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for clinsum.
type Server struct {
	router     chi.Router
	anonymizer *report.Anonymizer
	summarizer *summarize.Service
	diagnoses  *taxonomy.Service
	llm        *summarize.OpenAIClient
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(anon *report.Anonymizer, summ *summarize.Service, diag *taxonomy.Service, llm *summarize.OpenAIClient, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		anonymizer: anon,
		summarizer: summ,
		diagnoses:  diag,
		llm:        llm,
		log:        log,
		cfg:        cfg,
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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(RequestLogger(s.log))
	r.Use(metrics.Middleware)

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Authenticated endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/summarization/anonymize", s.handleAnonymize)
		r.Post("/summarization/summarize", s.handleSummarize)

		r.Route("/diagnoses", func(r chi.Router) {
			r.Get("/", s.handleListDiagnoses)
			r.Post("/", s.handleCreateDiagnosis)
			r.Get("/search", s.handleSearchDiagnoses)
			r.Get("/{id}", s.handleGetDiagnosis)
			r.Put("/{id}", s.handleUpdateDiagnosis)
			r.Delete("/{id}", s.handleDeleteDiagnosis)
		})

		r.Get("/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
