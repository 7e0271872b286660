package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/game-catalog-server/internal/api"
	"github.com/stacklok/game-catalog-server/internal/catalog"
	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/service"
	"github.com/stacklok/game-catalog-server/internal/service/inmemory"
	"github.com/stacklok/game-catalog-server/internal/sources"
	"github.com/stacklok/game-catalog-server/internal/status"
	pkgsync "github.com/stacklok/game-catalog-server/internal/sync"
	"github.com/stacklok/game-catalog-server/internal/sync/coordinator"
	"github.com/stacklok/game-catalog-server/internal/telemetry"
)

const (
	defaultHTTPAddress     = ":8080"
	defaultRequestTimeout  = 10 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 30 * time.Second
)

// CatalogAppOptions is a function that configures the catalog app builder
type CatalogAppOptions func(*catalogAppConfig) error

// catalogAppConfig collects the inputs of NewCatalogApp.
// Component overrides exist primarily for testing; production uses the defaults.
type catalogAppConfig struct {
	config *config.Config

	// Optional component overrides
	handlerFactory    sources.CatalogHandlerFactory
	syncManager       pkgsync.Manager
	statusPersistence status.StatusPersistence
	store             *catalog.Store

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	// Telemetry components
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	metricsHandler http.Handler
}

func baseConfig(opts ...CatalogAppOptions) (*catalogAppConfig, error) {
	cfg := &catalogAppConfig{
		address:        defaultHTTPAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return cfg, nil
}

// NewCatalogApp builds a CatalogApp from the given options
func NewCatalogApp(
	ctx context.Context,
	opts ...CatalogAppOptions,
) (*CatalogApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	if cfg.store == nil {
		cfg.store = catalog.NewStore()
	}
	tracker := status.NewTracker(nil)

	syncCoordinator, err := buildSyncComponents(ctx, cfg, tracker)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync components: %w", err)
	}

	catalogService, err := buildServiceComponents(ctx, cfg, tracker)
	if err != nil {
		return nil, fmt.Errorf("failed to build service components: %w", err)
	}

	httpServer, err := buildHTTPServer(ctx, cfg, catalogService)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)

	return &CatalogApp{
		config: cfg.config,
		components: &AppComponents{
			SyncCoordinator: syncCoordinator,
			CatalogService:  catalogService,
			Store:           cfg.store,
			StatusTracker:   tracker,
		},
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		parts := strings.SplitN(addr, ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		host, port := parts[0], parts[1]
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares, replacing the defaults
func WithMiddlewares(mw ...func(http.Handler) http.Handler) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithHandlerFactory allows injecting a custom catalog handler factory (for testing)
func WithHandlerFactory(f sources.CatalogHandlerFactory) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.handlerFactory = f
		return nil
	}
}

// WithSyncManager allows injecting a custom sync manager (for testing)
func WithSyncManager(sm pkgsync.Manager) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.syncManager = sm
		return nil
	}
}

// WithStatusPersistence overrides the status persistence derived from the statusDir setting
func WithStatusPersistence(p status.StatusPersistence) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.statusPersistence = p
		return nil
	}
}

// WithStore allows injecting the snapshot store (for testing)
func WithStore(s *catalog.Store) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.store = s
		return nil
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for catalog, sync and HTTP metrics
func WithMeterProvider(mp metric.MeterProvider) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.meterProvider = mp
		return nil
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider for request and query spans
func WithTracerProvider(tp trace.TracerProvider) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.tracerProvider = tp
		return nil
	}
}

// WithMetricsHandler mounts a scrape handler at /metrics
func WithMetricsHandler(h http.Handler) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		cfg.metricsHandler = h
		return nil
	}
}

// WithTelemetry wires every provider exposed by t
func WithTelemetry(t *telemetry.Telemetry) CatalogAppOptions {
	return func(cfg *catalogAppConfig) error {
		if t == nil {
			return nil
		}
		cfg.meterProvider = t.MeterProvider()
		cfg.tracerProvider = t.TracerProvider()
		cfg.metricsHandler = t.MetricsHandler()
		return nil
	}
}

// buildSyncComponents builds the sync manager and the coordinator driving it
func buildSyncComponents(
	_ context.Context,
	b *catalogAppConfig,
	tracker *status.Tracker,
) (coordinator.Coordinator, error) {
	slog.Info("Initializing sync components")

	if b.handlerFactory == nil {
		b.handlerFactory = sources.NewCatalogHandlerFactory()
	}

	if b.statusPersistence == nil && b.config.StatusDir != "" {
		b.statusPersistence = status.NewFileStatusPersistence(b.config.StatusDir)
		slog.Info("Sync status persistence enabled", "dir", b.config.StatusDir)
	}

	var coordOpts []coordinator.Option
	if b.statusPersistence != nil {
		coordOpts = append(coordOpts, coordinator.WithStatusPersistence(b.statusPersistence))
	}

	if b.syncManager == nil {
		var managerOpts []pkgsync.ManagerOption
		if b.meterProvider != nil {
			catalogMetrics, err := telemetry.NewCatalogMetrics(b.meterProvider)
			if err != nil {
				return nil, fmt.Errorf("failed to create catalog metrics: %w", err)
			}
			managerOpts = append(managerOpts, pkgsync.WithCatalogMetrics(catalogMetrics))
		}
		b.syncManager = pkgsync.NewDefaultSyncManager(b.handlerFactory, b.store, managerOpts...)
	}

	if b.meterProvider != nil {
		syncMetrics, err := telemetry.NewSyncMetrics(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create sync metrics: %w", err)
		}
		if syncMetrics != nil {
			coordOpts = append(coordOpts, coordinator.WithSyncMetrics(syncMetrics))
			slog.Info("Sync metrics enabled")
		}
	}

	syncCoordinator := coordinator.New(b.syncManager, tracker, b.config, coordOpts...)
	slog.Info("Sync components initialized successfully")

	return syncCoordinator, nil
}

// buildServiceComponents builds the catalog service reading from the shared store
func buildServiceComponents(
	_ context.Context,
	b *catalogAppConfig,
	tracker *status.Tracker,
) (service.CatalogService, error) {
	slog.Info("Initializing service components")

	svcOpts := []inmemory.Option{
		inmemory.WithCatalogName(b.config.GetCatalogName()),
		inmemory.WithStatusProvider(tracker),
	}
	if b.tracerProvider != nil {
		svcOpts = append(svcOpts, inmemory.WithTracer(b.tracerProvider.Tracer(telemetry.TracerName)))
	}
	if b.meterProvider != nil {
		catalogMetrics, err := telemetry.NewCatalogMetrics(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog metrics: %w", err)
		}
		svcOpts = append(svcOpts, inmemory.WithMetrics(catalogMetrics))
	}

	svc, err := inmemory.New(b.store, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	slog.Info("Service components initialized successfully")
	return svc, nil
}

// buildHTTPServer builds the HTTP server with router and middleware
//
//nolint:unparam // we prefer having a similar interface
func buildHTTPServer(
	_ context.Context,
	b *catalogAppConfig,
	svc service.CatalogService,
) (*http.Server, error) {
	slog.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	// Metrics first so rejected and panicking requests are still counted
	if b.meterProvider != nil {
		metricsMiddleware, err := telemetry.MetricsMiddleware(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
		}
		if metricsMiddleware != nil {
			b.middlewares = append([]func(http.Handler) http.Handler{metricsMiddleware}, b.middlewares...)
			slog.Info("HTTP metrics middleware enabled")
		}
	}

	if b.tracerProvider != nil {
		b.middlewares = append([]func(http.Handler) http.Handler{telemetry.TracingMiddleware(b.tracerProvider)}, b.middlewares...)
		slog.Info("HTTP tracing middleware enabled")
	}

	router := api.NewServer(svc,
		api.WithMiddlewares(b.middlewares...),
		api.WithMetricsHandler(b.metricsHandler),
	)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return server, nil
}
