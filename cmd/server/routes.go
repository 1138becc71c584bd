package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"projectboard/internal/auth"
	boardSvc "projectboard/internal/domain/services/board"
	"projectboard/internal/handler"
	"projectboard/internal/handler/sse"
	"projectboard/internal/middleware"
	"projectboard/internal/store"
)

// routerDeps is everything the HTTP surface needs
type routerDeps struct {
	store       *store.Store
	service     boardSvc.ProjectService
	gatherer    prometheus.Gatherer
	verifier    auth.JWTVerifier // nil disables auth
	sseConfig   *sse.Config
	corsOrigins string
	logger      *slog.Logger
}

// newRouter registers the board routes and wraps them in the middleware chain
func newRouter(deps routerDeps) http.Handler {
	projectHandler := handler.NewProjectHandler(deps.service, deps.logger)
	streamHandler := handler.NewStreamHandler(deps.store, deps.sseConfig, deps.logger)
	healthHandler := handler.NewHealthHandler(deps.store)

	// Go 1.22+ enhanced patterns
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.HealthCheck)
	mux.Handle("GET /metrics", promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/stream", streamHandler.StreamProjects) // literal beats {id}
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}/status", projectHandler.MoveProject)

	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	if deps.verifier != nil {
		h = middleware.AuthMiddleware(deps.verifier, deps.logger, "/health", "/metrics")(h)
	}
	h = middleware.Recovery(deps.logger)(h)

	// CORS must see OPTIONS pre-flight requests before auth
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(deps.corsOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(h)
}
