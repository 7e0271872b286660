package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/git"
)

const (
	// DefaultCatalogJSONFile is the catalog file read from Git sources in json format
	DefaultCatalogJSONFile = "catalog.json"

	// DefaultCatalogYAMLFile is the catalog file read from Git sources in yaml format
	DefaultCatalogYAMLFile = "catalog.yaml"
)

// gitCatalogHandler handles catalog documents from Git repositories
type gitCatalogHandler struct {
	gitClient git.Client
	validator CatalogDataValidator
}

var _ CatalogHandler = (*gitCatalogHandler)(nil)

// NewGitCatalogHandler creates a new Git catalog handler
func NewGitCatalogHandler() CatalogHandler {
	return newGitCatalogHandler(git.NewDefaultGitClient())
}

func newGitCatalogHandler(client git.Client) *gitCatalogHandler {
	return &gitCatalogHandler{
		gitClient: client,
		validator: NewCatalogDataValidator(),
	}
}

// Validate validates the Git source configuration
func (*gitCatalogHandler) Validate(source *config.SourceConfig) error {
	if source == nil {
		return fmt.Errorf("source configuration cannot be nil")
	}

	if source.Git == nil {
		return fmt.Errorf("git configuration is required")
	}

	gitSource := source.Git

	if gitSource.Repository == "" {
		return fmt.Errorf("git repository URL cannot be empty")
	}

	specified := 0
	for _, ref := range []string{gitSource.Branch, gitSource.Tag, gitSource.Commit} {
		if ref != "" {
			specified++
		}
	}
	if specified > 1 {
		return fmt.Errorf("only one of branch, tag, or commit may be specified")
	}

	return nil
}

// catalogPath returns the path of the catalog document inside the repository
func catalogPath(source *config.SourceConfig) string {
	if source.Git.Path != "" {
		return source.Git.Path
	}
	if source.GetFormat() == config.SourceFormatYAML {
		return DefaultCatalogYAMLFile
	}
	return DefaultCatalogJSONFile
}

// fetchCatalogData reads the catalog document from the configured revision.
// It returns the document and the commit it was read at.
func (h *gitCatalogHandler) fetchCatalogData(ctx context.Context, source *config.SourceConfig) ([]byte, string, error) {
	if err := h.Validate(source); err != nil {
		return nil, "", fmt.Errorf("source validation failed: %w", err)
	}

	ref := &git.Ref{
		URL:    source.Git.Repository,
		Branch: source.Git.Branch,
		Tag:    source.Git.Tag,
		Commit: source.Git.Commit,
	}
	filePath := catalogPath(source)

	startTime := time.Now()
	slog.Info("Reading catalog from git",
		"repository", ref.URL,
		"branch", ref.Branch,
		"tag", ref.Tag,
		"commit", ref.Commit,
		"path", filePath)

	doc, err := h.gitClient.ReadDocument(ctx, ref, filePath)
	duration := time.Since(startTime)
	if err != nil {
		slog.Error("Git catalog read failed",
			"error", err,
			"repository", ref.URL,
			"duration", duration.String())
		return nil, "", fmt.Errorf("failed to read %s from repository: %w", filePath, err)
	}

	slog.Info("Git catalog read completed",
		"repository", ref.URL,
		"duration", duration.String(),
		"branch", doc.Branch,
		"commit_sha", doc.Commit,
		"bytes", len(doc.Content))

	return doc.Content, doc.Commit, nil
}

// FetchCatalog retrieves the catalog document from the Git repository
func (h *gitCatalogHandler) FetchCatalog(ctx context.Context, source *config.SourceConfig) (*FetchResult, error) {
	data, commit, err := h.fetchCatalogData(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog data: %w", err)
	}

	doc, err := h.validator.ValidateData(data, source.GetFormat())
	if err != nil {
		return nil, fmt.Errorf("catalog data validation failed: %w", err)
	}

	origin := config.SourceTypeGit + ":" + source.Git.Repository
	if commit != "" {
		origin += "@" + commit
	}

	return NewFetchResult(doc, hashData(data), source.GetFormat(), origin), nil
}

// CurrentHash returns the hash of the catalog document at the configured reference
func (h *gitCatalogHandler) CurrentHash(ctx context.Context, source *config.SourceConfig) (string, error) {
	data, _, err := h.fetchCatalogData(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch catalog data: %w", err)
	}

	return hashData(data), nil
}
