package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Telemetry owns the tracer and meter providers of the catalog server.
// Disabled signals are served by no-op providers.
type Telemetry struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	// metricsHandler serves /metrics, nil unless metrics are scraped
	metricsHandler http.Handler
}

// Option is a function that configures the telemetry setup
type Option func(*telemetryConfig)

type telemetryConfig struct {
	config *Config
}

// WithTelemetryConfig sets the telemetry configuration
func WithTelemetryConfig(cfg *Config) Option {
	return func(tc *telemetryConfig) {
		tc.config = cfg
	}
}

// New starts the providers enabled by the configuration.
// The caller must call Shutdown to flush pending spans and metrics.
func New(ctx context.Context, opts ...Option) (*Telemetry, error) {
	tc := &telemetryConfig{}
	for _, opt := range opts {
		opt(tc)
	}

	if err := tc.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry configuration: %w", err)
	}

	tel := &Telemetry{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
	}

	s := tc.config.resolve()
	if !s.tracing && !s.metrics {
		slog.Debug("Telemetry disabled")
		return tel, nil
	}

	res, err := newResource(ctx, s)
	if err != nil {
		return nil, err
	}

	if s.tracing {
		tp, err := newTracerProvider(ctx, s, res)
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer provider: %w", err)
		}
		tel.tracerProvider = tp
	}

	if s.metrics {
		// A dedicated registry keeps the scrape output to this process' own collectors
		registry := prometheus.NewRegistry()
		mp, err := newMeterProvider(ctx, s, res, registry)
		if err != nil {
			_ = tel.Shutdown(ctx)
			return nil, fmt.Errorf("failed to create meter provider: %w", err)
		}
		tel.meterProvider = mp

		if s.scraped() {
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			tel.metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		}
	}

	slog.Info("Telemetry initialized",
		"service_name", s.serviceName,
		"tracing", s.tracing,
		"sampling", s.sampling,
		"metrics", s.metrics,
		"exporter", s.exporter,
		"endpoint", s.endpoint,
	)
	return tel, nil
}

// TracerProvider returns the tracer provider, a no-op one when tracing is off
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

// MeterProvider returns the meter provider, a no-op one when metrics are off
func (t *Telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

// MetricsHandler returns the Prometheus scrape handler, or nil when metrics are not scraped
func (t *Telemetry) MetricsHandler() http.Handler {
	return t.metricsHandler
}

// Shutdown flushes and stops the SDK providers. Calling it again is a no-op.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if tp, ok := t.tracerProvider.(*sdktrace.TracerProvider); ok {
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
		t.tracerProvider = tracenoop.NewTracerProvider()
	}

	if mp, ok := t.meterProvider.(*sdkmetric.MeterProvider); ok {
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
		t.meterProvider = metricnoop.NewMeterProvider()
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	slog.Debug("Telemetry shut down")
	return nil
}
