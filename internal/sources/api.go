package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/httpclient"
)

const (
	gamesPath      = "/api/games"
	categoriesPath = "/api/categories"
	publishersPath = "/api/publishers"

	// DefaultAPIMaxTries is the number of attempts made for each upstream request
	DefaultAPIMaxTries = 3
)

// apiDocument assembles the upstream responses into one catalog document
type apiDocument struct {
	Categories json.RawMessage `json:"categories,omitempty"`
	Publishers json.RawMessage `json:"publishers,omitempty"`
	Games      json.RawMessage `json:"games"`
}

// apiCatalogHandler handles catalogs served by an upstream catalog API.
// API Format: /api/games (list), /api/categories and /api/publishers (optional directories)
type apiCatalogHandler struct {
	httpClient httpclient.Client
	validator  CatalogDataValidator
	newBackOff func() backoff.BackOff
	maxTries   uint
}

var _ CatalogHandler = (*apiCatalogHandler)(nil)

// NewAPICatalogHandler creates a new upstream API catalog handler
func NewAPICatalogHandler() CatalogHandler {
	return newAPICatalogHandler(httpclient.NewDefaultClient(0), defaultBackOff)
}

func newAPICatalogHandler(client httpclient.Client, newBackOff func() backoff.BackOff) *apiCatalogHandler {
	return &apiCatalogHandler{
		httpClient: client,
		validator:  NewCatalogDataValidator(),
		newBackOff: newBackOff,
		maxTries:   DefaultAPIMaxTries,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return b
}

// Validate validates the API source configuration
func (*apiCatalogHandler) Validate(source *config.SourceConfig) error {
	if source == nil {
		return fmt.Errorf("source configuration cannot be nil")
	}

	if source.API == nil {
		return fmt.Errorf("api configuration is required")
	}

	if source.API.Endpoint == "" {
		return fmt.Errorf("api endpoint cannot be empty")
	}

	if source.Format != "" && source.Format != config.SourceFormatJSON {
		return fmt.Errorf("unsupported format: expected %s or empty, got %s",
			config.SourceFormatJSON, source.Format)
	}

	return nil
}

// FetchCatalog retrieves games, categories and publishers from the upstream API
func (h *apiCatalogHandler) FetchCatalog(ctx context.Context, source *config.SourceConfig) (*FetchResult, error) {
	data, err := h.fetchCatalogData(ctx, source)
	if err != nil {
		return nil, err
	}

	doc, err := h.validator.ValidateData(data, config.SourceFormatJSON)
	if err != nil {
		return nil, fmt.Errorf("upstream catalog validation failed: %w", err)
	}

	origin := config.SourceTypeAPI + ":" + getBaseURL(source)
	return NewFetchResult(doc, hashData(data), config.SourceFormatJSON, origin), nil
}

// CurrentHash returns the hash of the assembled upstream catalog
func (h *apiCatalogHandler) CurrentHash(ctx context.Context, source *config.SourceConfig) (string, error) {
	data, err := h.fetchCatalogData(ctx, source)
	if err != nil {
		return "", err
	}
	return hashData(data), nil
}

func (h *apiCatalogHandler) fetchCatalogData(ctx context.Context, source *config.SourceConfig) ([]byte, error) {
	if err := h.Validate(source); err != nil {
		return nil, fmt.Errorf("source validation failed: %w", err)
	}

	baseURL := getBaseURL(source)
	startTime := time.Now()
	slog.Info("Fetching catalog from upstream API", "url", baseURL)

	games, err := h.get(ctx, baseURL+gamesPath)
	if err != nil {
		slog.Error("Upstream API fetch failed",
			"error", err,
			"url", baseURL+gamesPath,
			"duration", time.Since(startTime).String())
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	categories, err := h.getOptional(ctx, baseURL+categoriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	publishers, err := h.getOptional(ctx, baseURL+publishersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch publishers: %w", err)
	}

	data, err := json.Marshal(apiDocument{
		Categories: categories,
		Publishers: publishers,
		Games:      games,
	})
	if err != nil {
		return nil, fmt.Errorf("upstream returned invalid JSON: %w", err)
	}

	slog.Info("Fetched catalog from upstream API",
		"url", baseURL,
		"bytes", len(data),
		"duration", time.Since(startTime).String())

	return data, nil
}

// get performs a GET request, retrying transient failures with exponential backoff
func (h *apiCatalogHandler) get(ctx context.Context, url string) ([]byte, error) {
	operation := func() ([]byte, error) {
		data, err := h.httpClient.Get(ctx, url)
		if err == nil {
			return data, nil
		}
		if !httpclient.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		slog.Warn("Upstream request failed, retrying", "url", url, "error", err)
		return nil, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(h.newBackOff()),
		backoff.WithMaxTries(h.maxTries))
}

// getOptional is like get but treats 404 Not Found as an absent resource
func (h *apiCatalogHandler) getOptional(ctx context.Context, url string) (json.RawMessage, error) {
	data, err := h.get(ctx, url)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			slog.Debug("Optional upstream resource not available", "url", url)
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// getBaseURL extracts and normalizes the base URL
func getBaseURL(source *config.SourceConfig) string {
	return strings.TrimRight(source.API.Endpoint, "/")
}
