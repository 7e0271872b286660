package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	catalogapp "github.com/stacklok/game-catalog-server/internal/app"
	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/telemetry"
)

const (
	defaultGracefulTimeout   = 30 * time.Second
	telemetryShutdownTimeout = 5 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog API server",
		Long: `Start the catalog API server.

The server requires a configuration file (--config) that specifies:
- The catalog name and its source (file, git, api or database)
- The sync policy
- Telemetry settings

See the examples/ directory for sample configurations.`,
		RunE: runServe,
	}

	cmd.Flags().String("address", ":8080", "Address to listen on")
	cmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, configPath, err := loadConfig(v.GetString("config"))
	if err != nil {
		return err
	}
	address := v.GetString("address")

	slog.Info("Loaded configuration",
		"path", configPath,
		"catalog", cfg.GetCatalogName(),
		"source", cfg.Source.GetType())

	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down telemetry", "error", err)
		}
	}()

	server, err := catalogapp.NewCatalogApp(ctx,
		catalogapp.WithConfig(cfg),
		catalogapp.WithAddress(address),
		catalogapp.WithTelemetry(tel),
	)
	if err != nil {
		return fmt.Errorf("failed to build catalog server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	}

	if err := server.Stop(defaultGracefulTimeout); err != nil {
		return err
	}
	return <-errCh
}

// loadConfig loads and validates the configuration file at path
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("a configuration file is required (--config or %s_CONFIG)", EnvPrefix)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(path))
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, path, nil
}
