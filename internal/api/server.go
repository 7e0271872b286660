// Package api provides the REST API server for the game catalog.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/game-catalog-server/cmd/catalog-api/docs"
	"github.com/stacklok/game-catalog-server/internal/api/common"
	v1 "github.com/stacklok/game-catalog-server/internal/api/v1"
	"github.com/stacklok/game-catalog-server/internal/service"
)

// ServerOption configures the catalog API server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	middlewares    []func(http.Handler) http.Handler
	metricsHandler http.Handler
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithMetricsHandler mounts handler at /metrics. A nil handler leaves the route unmounted.
func WithMetricsHandler(handler http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.metricsHandler = handler
	}
}

// NewServer creates and configures the HTTP router with the given service and options
func NewServer(svc service.CatalogService, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		middlewares: []func(http.Handler) http.Handler{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	// Mount health check routes directly at root
	r.Mount("/", v1.HealthRouter(svc))

	if cfg.metricsHandler != nil {
		r.Handle("/metrics", cfg.metricsHandler)
	}

	r.Get("/openapi.json", openAPIHandler)
	r.Get("/openapi.yaml", openAPIYAMLHandler)

	r.Mount("/api", v1.Router(svc))

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.DebugContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// openAPIHandler serves the OpenAPI specification in JSON format
//
//	@Summary		Get OpenAPI specification
//	@Description	Returns the OpenAPI specification for the catalog API in JSON format
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	object	"OpenAPI specification in JSON format"
//	@Router			/openapi.json [get]
func openAPIHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
}

// openAPIYAMLHandler serves the OpenAPI specification in YAML format
//
//	@Summary		Get OpenAPI specification as YAML
//	@Description	Returns the OpenAPI specification for the catalog API in YAML format
//	@Tags			system
//	@Produce		application/x-yaml
//	@Success		200	{string}	string	"OpenAPI specification in YAML format"
//	@Router			/openapi.yaml [get]
func openAPIYAMLHandler(w http.ResponseWriter, _ *http.Request) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &spec); err != nil {
		slog.Error("Failed to parse OpenAPI specification", "error", err)
		common.WriteErrorResponse(w, "Failed to parse OpenAPI specification", http.StatusInternalServerError)
		return
	}

	yamlData, err := yaml.Marshal(spec)
	if err != nil {
		common.WriteErrorResponse(w, "Failed to convert OpenAPI specification to YAML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(yamlData)
}
