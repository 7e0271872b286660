package app

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/sources"
)

// ValidationSummary is printed by the validate command
type ValidationSummary struct {
	CatalogName string `json:"catalogName"`
	SourceType  string `json:"sourceType"`
	Source      string `json:"source"`
	Format      string `json:"format,omitempty"`
	Hash        string `json:"hash"`
	Version     string `json:"version,omitempty"`
	Games       int    `json:"games"`
	Categories  int    `json:"categories"`
	Publishers  int    `json:"publishers"`
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Fetch the configured catalog once and report what would be served",
		Long: `Load the configuration, fetch the catalog from its source, check it
and print a JSON summary. Nothing is served and no status is written.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
	cmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	return validateWithFactory(cmd, sources.NewCatalogHandlerFactory())
}

func validateWithFactory(cmd *cobra.Command, factory sources.CatalogHandlerFactory) error {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(v.GetString("config"))
	if err != nil {
		return err
	}

	sourceType := cfg.Source.GetType()
	handler, err := factory.CreateHandler(sourceType)
	if err != nil {
		return fmt.Errorf("failed to create catalog handler: %w", err)
	}
	if err := handler.Validate(&cfg.Source); err != nil {
		return fmt.Errorf("source validation failed: %w", err)
	}

	result, err := handler.FetchCatalog(cmd.Context(), &cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if result == nil || result.Catalog == nil {
		return fmt.Errorf("source returned no catalog")
	}

	snap, err := result.Catalog.Snapshot(catalog.WithSource(result.Source))
	if err != nil {
		return fmt.Errorf("failed to build catalog snapshot: %w", err)
	}

	slog.Debug("Catalog fetched", "source", result.Source, "hash", result.Hash)

	summary := ValidationSummary{
		CatalogName: cfg.GetCatalogName(),
		SourceType:  sourceType,
		Source:      result.Source,
		Format:      result.Format,
		Hash:        result.Hash,
		Version:     snap.Version(),
		Games:       snap.Len(),
		Categories:  len(snap.DistinctCategories()),
		Publishers:  len(snap.DistinctPublishers()),
	}

	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format summary: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}
