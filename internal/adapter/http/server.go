package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CycloneService answers cyclone queries.
type CycloneService interface {
	List(ctx context.Context) (domain.Listing, error)
	Get(ctx context.Context, code string) (domain.CycloneRecord, error)
}

// Server exposes the cyclone API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	cyclones   CycloneService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /cyclones, and /cyclones/{code} routes.
func NewServer(addr string, cyclones CycloneService, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		cyclones: cyclones,
		logger:   logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RequestLogger(logger))
		r.Get("/cyclones", s.handleList)
		r.Get("/cyclones/{code}", s.handleGet)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	listing, err := s.cyclones.List(r.Context())
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, listing)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	rec, err := s.cyclones.Get(r.Context(), code)
	if errors.Is(err, domain.ErrNotFound) {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "no active cyclone " + code})
		return
	}
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) upstreamError(w http.ResponseWriter, err error) {
	s.logger.Error("cyclone query failed", "error", err)
	sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}
