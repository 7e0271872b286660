// Package v1 provides the game catalog query endpoints.
package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stacklok/game-catalog-server/internal/api/common"
	"github.com/stacklok/game-catalog-server/internal/service"
	"github.com/stacklok/game-catalog-server/internal/telemetry"
)

// Query parameters accepted by GET /api/games
const (
	ParamCategory    = "category"
	ParamPublisher   = "publisher"
	ParamCategoryID  = "category_id"
	ParamPublisherID = "publisher_id"
)

// Routes handles HTTP requests for the catalog endpoints.
type Routes struct {
	service service.CatalogService
}

// NewRoutes creates a new Routes instance with the given service.
func NewRoutes(svc service.CatalogService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates and configures the HTTP router for the catalog endpoints.
func Router(svc service.CatalogService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Get("/games", routes.queryGames)
	r.Get("/games/{id}", routes.getGame)
	r.Get("/categories", routes.listCategories)
	r.Get("/publishers", routes.listPublishers)
	r.Get("/facets", routes.listFacets)
	r.Get("/catalog", routes.getCatalogInfo)

	return r
}

// queryGames handles GET /api/games
//
// Every present facet parameter narrows the result. An empty parameter is
// treated as absent and an unknown value yields an empty list.
//
//	@Summary		Query games
//	@Description	List the games matching every given facet selection, in catalog order
//	@Tags			games
//	@Produce		json
//	@Param			category		query		string	false	"Category name"
//	@Param			publisher		query		string	false	"Publisher name"
//	@Param			category_id		query		int		false	"Category id"
//	@Param			publisher_id	query		int		false	"Publisher id"
//	@Success		200				{array}		GameResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/api/games [get]
func (routes *Routes) queryGames(w http.ResponseWriter, r *http.Request) {
	params, err := parseGameQueryParams(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := routes.service.QueryGames(r.Context(), params.options()...)
	if err != nil {
		slog.Error("Failed to query games", "error", err)
		common.WriteErrorResponse(w, "Failed to query games", http.StatusInternalServerError)
		return
	}

	telemetry.RecordGameQuery(r.Context(), telemetry.GameQuery{
		Category:    params.category,
		Publisher:   params.publisher,
		CategoryID:  params.categoryID,
		PublisherID: params.publisherID,
		Results:     len(result.Records),
	})
	common.WriteJSONResponse(w, newGameListResponse(result.Records), http.StatusOK)
}

// gameQueryParams are the facet selections of GET /api/games. Nil means absent.
type gameQueryParams struct {
	category    *string
	publisher   *string
	categoryID  *int
	publisherID *int
}

func parseGameQueryParams(r *http.Request) (*gameQueryParams, error) {
	params := &gameQueryParams{
		category:  common.GetOptionalQueryParam(r, ParamCategory),
		publisher: common.GetOptionalQueryParam(r, ParamPublisher),
	}

	var err error
	if params.categoryID, err = common.GetOptionalIntQueryParam(r, ParamCategoryID); err != nil {
		return nil, err
	}
	if params.publisherID, err = common.GetOptionalIntQueryParam(r, ParamPublisherID); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *gameQueryParams) options() []service.Option[service.QueryGamesOptions] {
	opts := []service.Option[service.QueryGamesOptions]{}
	if p.category != nil {
		opts = append(opts, service.WithCategory(*p.category))
	}
	if p.publisher != nil {
		opts = append(opts, service.WithPublisher(*p.publisher))
	}
	if p.categoryID != nil {
		opts = append(opts, service.WithCategoryID(*p.categoryID))
	}
	if p.publisherID != nil {
		opts = append(opts, service.WithPublisherID(*p.publisherID))
	}
	return opts
}

// getGame handles GET /api/games/{id}
//
//	@Summary		Get game by id
//	@Tags			games
//	@Produce		json
//	@Param			id	path		int	true	"Game id"
//	@Success		200	{object}	GameResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/games/{id} [get]
func (routes *Routes) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := common.GetIntURLParam(r, "id")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	telemetry.RecordGameLookup(r.Context(), id)

	game, err := routes.service.GetGame(r.Context(), service.WithGameID(id))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			common.WriteErrorResponse(w, "Game not found", http.StatusNotFound)
			return
		}
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	common.WriteJSONResponse(w, newGameResponse(game), http.StatusOK)
}

// listCategories handles GET /api/categories
//
//	@Summary		List categories
//	@Description	List every category used by a game, sorted by name, with its game count
//	@Tags			facets
//	@Produce		json
//	@Success		200	{array}		FacetValueResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/categories [get]
func (routes *Routes) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := routes.service.ListCategories(r.Context())
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
		common.WriteErrorResponse(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, newFacetValueListResponse(categories), http.StatusOK)
}

// listPublishers handles GET /api/publishers
//
//	@Summary		List publishers
//	@Description	List every publisher used by a game, sorted by name, with its game count
//	@Tags			facets
//	@Produce		json
//	@Success		200	{array}		FacetValueResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/publishers [get]
func (routes *Routes) listPublishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := routes.service.ListPublishers(r.Context())
	if err != nil {
		slog.Error("Failed to list publishers", "error", err)
		common.WriteErrorResponse(w, "Failed to list publishers", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, newFacetValueListResponse(publishers), http.StatusOK)
}

// listFacets handles GET /api/facets.
// Both facet universes come from the same snapshot and never depend on a selection.
//
//	@Summary		List facet values
//	@Tags			facets
//	@Produce		json
//	@Success		200	{object}	FacetsResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/facets [get]
func (routes *Routes) listFacets(w http.ResponseWriter, r *http.Request) {
	result, err := routes.service.QueryGames(r.Context())
	if err != nil {
		slog.Error("Failed to list facets", "error", err)
		common.WriteErrorResponse(w, "Failed to list facets", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, FacetsResponse{
		SnapshotID: result.SnapshotID,
		Categories: nonNil(result.Categories),
		Publishers: nonNil(result.Publishers),
	}, http.StatusOK)
}

// getCatalogInfo handles GET /api/catalog
//
//	@Summary		Get catalog information
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogInfoResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/catalog [get]
func (routes *Routes) getCatalogInfo(w http.ResponseWriter, r *http.Request) {
	info, err := routes.service.GetCatalogInfo(r.Context())
	if err != nil {
		slog.Error("Failed to get catalog info", "error", err)
		common.WriteErrorResponse(w, "Failed to get catalog information", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, newCatalogInfoResponse(info), http.StatusOK)
}
