// Package app provides application lifecycle management for the game catalog server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/game-catalog-server/internal/config"
)

// CatalogApp encapsulates all components needed to run the catalog API server
// It provides lifecycle management and graceful shutdown capabilities
type CatalogApp struct {
	config     *config.Config
	components *AppComponents
	httpServer *http.Server

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start starts the HTTP server and the background sync.
// It blocks until both have stopped. A failure of either one stops the other.
func (app *CatalogApp) Start() error {
	listener, err := net.Listen("tcp", app.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return app.Serve(listener)
}

// Serve is Start on a caller-provided listener
func (app *CatalogApp) Serve(listener net.Listener) error {
	g, ctx := errgroup.WithContext(app.ctx)

	g.Go(func() error {
		if err := app.components.SyncCoordinator.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("sync coordinator failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("Server listening", "address", listener.Addr().String())
		if err := app.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	// Stop handles shutdown when the app context is cancelled;
	// this only covers one of the members failing on its own.
	g.Go(func() error {
		<-ctx.Done()
		if app.ctx.Err() != nil {
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down HTTP server", "error", err)
		}
		return nil
	})

	return g.Wait()
}

// Stop gracefully stops the application with the given timeout
// It stops the sync coordinator and then shuts down the HTTP server
func (app *CatalogApp) Stop(timeout time.Duration) error {
	slog.Info("Shutting down server...")

	if err := app.components.SyncCoordinator.Stop(); err != nil {
		slog.Error("Failed to stop sync coordinator", "error", err)
	}

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *CatalogApp) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server
func (app *CatalogApp) GetHTTPServer() *http.Server {
	return app.httpServer
}

// GetComponents returns the wired application components
func (app *CatalogApp) GetComponents() *AppComponents {
	return app.components
}
