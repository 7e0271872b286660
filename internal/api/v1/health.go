package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stacklok/game-catalog-server/internal/api/common"
	"github.com/stacklok/game-catalog-server/internal/service"
	"github.com/stacklok/game-catalog-server/internal/versions"
)

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.CatalogService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
//
//	@Summary		Health check
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, StatusResponse{Status: "healthy"}, http.StatusOK)
}

// readinessHandler reports ready once a catalog snapshot has been published
//
//	@Summary		Readiness check
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/readiness [get]
func readinessHandler(svc service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			common.WriteErrorResponse(w, "CatalogService not ready: "+err.Error(), http.StatusServiceUnavailable)
			return
		}

		common.WriteJSONResponse(w, StatusResponse{Status: "ready"}, http.StatusOK)
	}
}

// versionHandler handles version information requests
//
//	@Summary		Version information
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	versions.VersionInfo
//	@Router			/version [get]
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, versions.GetVersionInfo(), http.StatusOK)
}
