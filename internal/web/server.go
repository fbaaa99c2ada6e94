// Package web provides the HTTP surface of the import service: domain
// listing, template download, and the import/preview endpoints that feed the
// external preview UI.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otohub/catalog-import/internal/config"
	"github.com/otohub/catalog-import/internal/importer"
	"github.com/otohub/catalog-import/internal/observability"
	"github.com/otohub/catalog-import/internal/web/middleware"
)

// Server is the HTTP server for the catalog import service.
type Server struct {
	pool   *pgxpool.Pool
	cfg    *config.Config
	locks  *importer.RunLock
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance.
func NewServer(pool *pgxpool.Pool, cfg *config.Config) *Server {
	s := &Server{
		pool:   pool,
		cfg:    cfg,
		locks:  importer.NewRunLock(cfg.Import.RunWait),
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Import.Timeout + 30*time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", observability.Handler())

	s.router.Route("/api", func(r chi.Router) {
		if s.cfg.Security.RequireAPIKey {
			r.Use(middleware.APIKey(s.cfg.Security.APIKeys))
		}

		r.Get("/domains", s.handleListDomains)
		r.Get("/template/{domain}", s.handleTemplate)
		r.Post("/import/{domain}", s.handleImport)
		r.Post("/preview/{domain}", s.handlePreview)
	})
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
