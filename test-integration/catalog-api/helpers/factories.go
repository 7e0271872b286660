// Package helpers provides shared fixtures for the catalog API integration tests.
package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/onsi/gomega"
)

// FacetRef points a game at its category or publisher
type FacetRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Facet is an entry of the categories or publishers directory
type Facet struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Game is one catalog entry
type Game struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StarRating  *float64  `json:"starRating,omitempty"`
	Category    *FacetRef `json:"category,omitempty"`
	Publisher   *FacetRef `json:"publisher,omitempty"`
}

// CatalogData is a catalog document
type CatalogData struct {
	Version     string  `json:"version,omitempty"`
	LastUpdated string  `json:"lastUpdated,omitempty"`
	Categories  []Facet `json:"categories,omitempty"`
	Publishers  []Facet `json:"publishers,omitempty"`
	Games       []Game  `json:"games"`
}

func rating(v float64) *float64 {
	return &v
}

// Category and publisher ids of the standard fixture
const (
	CategoryStrategy = 1
	CategoryCardGame = 2
	CategoryPuzzle   = 3

	PublisherTailspin = 1
	PublisherContoso  = 2
	PublisherFabrikam = 3
)

// CreateStandardCatalog returns a catalog with every combination of interest:
// a category with several publishers, a publisher with several categories,
// a game without a publisher and a directory entry no game uses.
func CreateStandardCatalog() CatalogData {
	strategy := &FacetRef{ID: CategoryStrategy, Name: "Strategy"}
	cards := &FacetRef{ID: CategoryCardGame, Name: "Card Game"}
	puzzle := &FacetRef{ID: CategoryPuzzle, Name: "Puzzle"}
	tailspin := &FacetRef{ID: PublisherTailspin, Name: "Tailspin Toys"}
	contoso := &FacetRef{ID: PublisherContoso, Name: "Contoso Games"}

	return CatalogData{
		Version:     "1.0.0",
		LastUpdated: "2025-01-15T10:00:00Z",
		Categories: []Facet{
			{ID: CategoryStrategy, Name: "Strategy", Description: "Plan ahead"},
			{ID: CategoryCardGame, Name: "Card Game"},
			{ID: CategoryPuzzle, Name: "Puzzle"},
		},
		Publishers: []Facet{
			{ID: PublisherTailspin, Name: "Tailspin Toys"},
			{ID: PublisherContoso, Name: "Contoso Games"},
			{ID: PublisherFabrikam, Name: "Fabrikam"},
		},
		Games: []Game{
			{ID: 1, Title: "Harbor Masters", StarRating: rating(4.6), Category: strategy, Publisher: tailspin},
			{ID: 2, Title: "Pocket Gambit", StarRating: rating(4.1), Category: cards, Publisher: contoso},
			{ID: 3, Title: "Tile Cascade", Category: puzzle, Publisher: tailspin},
			{ID: 4, Title: "Siege of Ashford", StarRating: rating(4.8), Category: strategy, Publisher: contoso},
			{ID: 5, Title: "Solo Patience", Category: cards},
		},
	}
}

// MarshalCatalog encodes a catalog document as JSON
func MarshalCatalog(data CatalogData) []byte {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return jsonData
}

// WriteCatalogFile writes a catalog document to dir/name and returns its path
func WriteCatalogFile(dir, name string, data CatalogData) string {
	path := filepath.Join(dir, name)
	gomega.Expect(os.WriteFile(path, MarshalCatalog(data), 0600)).To(gomega.Succeed())
	return path
}

// ConfigOptions holds the optional settings of WriteConfigYAML
type ConfigOptions struct {
	SyncInterval string
	StatusDir    string
}

// WriteConfigYAML writes a configuration file for the given source and returns its path.
// source is the YAML body of the source key, e.g. "file:\n    path: /tmp/catalog.json".
func WriteConfigYAML(dir, catalogName, source string, opts *ConfigOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "catalogName: %s\nsource:\n  %s\n", catalogName, source)

	interval := "1h"
	if opts != nil && opts.SyncInterval != "" {
		interval = opts.SyncInterval
	}
	fmt.Fprintf(&b, "syncPolicy:\n  interval: %s\n", interval)

	if opts != nil && opts.StatusDir != "" {
		fmt.Fprintf(&b, "statusDir: %s\n", opts.StatusDir)
	}

	path := filepath.Join(dir, "config.yaml")
	gomega.Expect(os.WriteFile(path, []byte(b.String()), 0600)).To(gomega.Succeed())
	return path
}

// FileSource returns the source body for a file source
func FileSource(path string) string {
	return fmt.Sprintf("file:\n    path: %s", path)
}

// GitSource returns the source body for a git source following a branch
func GitSource(repository, branch, path string) string {
	return fmt.Sprintf("git:\n    repository: %s\n    branch: %s\n    path: %s", repository, branch, path)
}

// APISource returns the source body for an api source
func APISource(endpoint string) string {
	return fmt.Sprintf("api:\n    endpoint: %s", endpoint)
}

// SQLiteSource returns the source body for a sqlite database source
func SQLiteSource(path string) string {
	return fmt.Sprintf("database:\n    driver: sqlite\n    path: %s", path)
}
