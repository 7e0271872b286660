package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/onsi/gomega"

	catalogapp "github.com/stacklok/game-catalog-server/internal/app"
	"github.com/stacklok/game-catalog-server/internal/config"
)

// GameResponse mirrors a game as returned by the catalog API
type GameResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StarRating  *float64  `json:"starRating"`
	Category    *FacetRef `json:"category"`
	Publisher   *FacetRef `json:"publisher"`
}

// FacetsResponse mirrors the /api/facets body
type FacetsResponse struct {
	SnapshotID string   `json:"snapshotId"`
	Categories []string `json:"categories"`
	Publishers []string `json:"publishers"`
}

// FacetValueResponse mirrors an /api/categories or /api/publishers entry
type FacetValueResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GameCount   int    `json:"gameCount"`
}

// CatalogInfoResponse mirrors the /api/catalog body
type CatalogInfoResponse struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Source     string `json:"source"`
	SnapshotID string `json:"snapshotId"`
	TotalGames int    `json:"totalGames"`
	SyncStatus *struct {
		Phase        string `json:"phase"`
		Message      string `json:"message"`
		LastSyncHash string `json:"lastSyncHash"`
	} `json:"syncStatus"`
}

// ServerTestHelper manages the catalog API server lifecycle for testing
type ServerTestHelper struct {
	ctx        context.Context
	configPath string
	baseURL    string
	httpClient *http.Client
	app        *catalogapp.CatalogApp
	errCh      chan error
}

// NewServerTestHelper creates a new server test helper
func NewServerTestHelper(ctx context.Context, configPath string) *ServerTestHelper {
	return &ServerTestHelper{
		ctx:        ctx,
		configPath: configPath,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// StartServer builds the application from the config file and serves it on an ephemeral port
func (s *ServerTestHelper) StartServer() error {
	cfg, err := config.LoadConfig(config.WithConfigPath(s.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := catalogapp.NewCatalogApp(s.ctx,
		catalogapp.WithConfig(cfg),
		catalogapp.WithAddress("127.0.0.1:0"),
	)
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.app = app
	s.baseURL = "http://" + listener.Addr().String()
	s.errCh = make(chan error, 1)

	go func() {
		err := app.Serve(listener)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		}
		s.errCh <- err
	}()

	return nil
}

// StopServer gracefully stops the server and waits for it to exit
func (s *ServerTestHelper) StopServer() error {
	if s.app == nil {
		return nil
	}
	if err := s.app.Stop(5 * time.Second); err != nil {
		return err
	}
	select {
	case err := <-s.errCh:
		return err
	case <-time.After(10 * time.Second):
		return fmt.Errorf("server did not exit")
	}
}

// WaitForServerReady waits until the first snapshot has been published
func (s *ServerTestHelper) WaitForServerReady(timeout time.Duration) {
	gomega.Eventually(func() (int, error) {
		resp, err := s.httpClient.Get(s.baseURL + "/readiness")
		if err != nil {
			return 0, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		return resp.StatusCode, nil
	}, timeout, 100*time.Millisecond).Should(gomega.Equal(http.StatusOK), "Server should become ready")
}

// GetBaseURL returns the base URL of the server
func (s *ServerTestHelper) GetBaseURL() string {
	return s.baseURL
}

// Get issues a GET request against the server
func (s *ServerTestHelper) Get(path string) (*http.Response, error) {
	return s.httpClient.Get(s.baseURL + path)
}

// QueryGames calls /api/games with the given query parameters and decodes the result
func (s *ServerTestHelper) QueryGames(params map[string]string) []GameResponse {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	path := "/api/games"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var games []GameResponse
	s.getJSON(path, &games)
	return games
}

// GetFacets calls /api/facets
func (s *ServerTestHelper) GetFacets() FacetsResponse {
	var facets FacetsResponse
	s.getJSON("/api/facets", &facets)
	return facets
}

// GetCategories calls /api/categories
func (s *ServerTestHelper) GetCategories() []FacetValueResponse {
	var values []FacetValueResponse
	s.getJSON("/api/categories", &values)
	return values
}

// GetPublishers calls /api/publishers
func (s *ServerTestHelper) GetPublishers() []FacetValueResponse {
	var values []FacetValueResponse
	s.getJSON("/api/publishers", &values)
	return values
}

// GetCatalogInfo calls /api/catalog
func (s *ServerTestHelper) GetCatalogInfo() CatalogInfoResponse {
	var info CatalogInfoResponse
	s.getJSON("/api/catalog", &info)
	return info
}

func (s *ServerTestHelper) getJSON(path string, target any) {
	resp, err := s.Get(path)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	gomega.Expect(resp.StatusCode).To(gomega.Equal(http.StatusOK), "GET %s returned %s", path, string(body))
	gomega.Expect(json.Unmarshal(body, target)).To(gomega.Succeed())
}

// Titles returns the titles of games in response order
func Titles(games []GameResponse) []string {
	titles := make([]string, len(games))
	for i, g := range games {
		titles[i] = g.Title
	}
	return titles
}
