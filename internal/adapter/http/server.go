package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
)

// HeatmapProvider reports readiness and hands out the current heatmap.
type HeatmapProvider interface {
	sharedobs.ReadinessChecker
	Heatmap() (*layout.Heatmap, error)
}

// Server exposes the heatmap views alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	provider   HeatmapProvider
	renderer   *render.CachedRenderer
	validate   *validator.Validate
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with probe routes, the HTML page, the SVG
// document and the bucket JSON API.
func NewServer(addr string, provider HeatmapProvider, renderer *render.CachedRenderer, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		renderer: renderer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(provider))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /heatmap.svg", s.handleSVG)
	mux.HandleFunc("GET /api/buckets", s.handleBuckets)
	mux.HandleFunc("GET /api/buckets/{year}/{month}/sparkline.png", s.handleSparkline)

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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
