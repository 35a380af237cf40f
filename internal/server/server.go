package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/gymlog/internal/ingest/markdown"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/taxonomy"
	"github.com/go-chi/chi/v5"
)

// DocumentSource builds the document served by GET /api/v1/document.
type DocumentSource interface {
	Document(ctx context.Context) (*models.Document, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	source   DocumentSource
	markdown *markdown.Provider
	tax      *taxonomy.Taxonomy
	log      *slog.Logger
	apiKey   string
	identity func(http.Handler) http.Handler
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(source DocumentSource, provider *markdown.Provider, tax *taxonomy.Taxonomy, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		source:   source,
		markdown: provider,
		tax:      tax,
		log:      log,
		apiKey:   apiKey,
		identity: DevIdentity,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale switches caller identity from the dev user to tailnet WhoIs lookups.
func (s *Server) SetTailscale(lc WhoIser) {
	s.identity = TailscaleIdentity(lc, s.log)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.identity(next).ServeHTTP(w, r)
		})
	})

	s.router.Get("/healthz", s.handleHealth)

	// Parsing arbitrary text (API key required)
	s.router.With(APIKeyAuth(s.apiKey)).Post("/api/v1/parse", s.handleParse)

	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/document", s.handleDocument)
	s.router.Get("/api/v1/taxonomy", s.handleTaxonomy)
	s.router.Get("/api/v1/exercises/lookup", s.handleLookup)
	s.router.Get("/api/v1/progress", s.handleProgress)
}
