// Package telemetry instruments the catalog server with OpenTelemetry.
//
// Traces are pushed over OTLP/HTTP. Metrics are either pushed over OTLP/HTTP
// or exposed on /metrics for Prometheus to scrape. Game queries served over
// HTTP are annotated with their facet selection so spans and request metrics
// can be broken down by how the catalog was narrowed.
package telemetry

import (
	"errors"
	"fmt"
)

const (
	// DefaultServiceName is reported when the configuration names no service
	DefaultServiceName = "catalog-api"

	// DefaultEndpoint is the OTLP/HTTP collector used when none is configured
	DefaultEndpoint = "localhost:4318"

	// DefaultSampling is the trace sampling ratio used when none is configured
	DefaultSampling = 0.05
)

// MetricsExporter selects where metrics are exported
type MetricsExporter string

const (
	// MetricsExporterOTLP pushes metrics to the OTLP endpoint
	MetricsExporterOTLP MetricsExporter = "otlp"

	// MetricsExporterPrometheus exposes metrics on the /metrics endpoint for scraping
	MetricsExporterPrometheus MetricsExporter = "prometheus"
)

// Config is the telemetry section of the catalog configuration
type Config struct {
	// Enabled switches all telemetry on or off
	Enabled bool `yaml:"enabled"`

	// ServiceName identifies the catalog server in traces and metrics
	ServiceName string `yaml:"serviceName,omitempty"`

	// Endpoint is the OTLP/HTTP collector as "host:port"
	Endpoint string `yaml:"endpoint,omitempty"`

	// Insecure uses plain HTTP towards the collector
	Insecure bool `yaml:"insecure,omitempty"`

	Tracing *TracingConfig `yaml:"tracing,omitempty"`
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
}

// TracingConfig configures request and query tracing
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Sampling is the ratio of traces kept, between 0.0 and 1.0. Zero means DefaultSampling.
	Sampling float64 `yaml:"sampling,omitempty"`
}

// MetricsConfig configures catalog and request metrics
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Exporter is "otlp" (default) or "prometheus"
	Exporter MetricsExporter `yaml:"exporter,omitempty"`
}

// settings is a Config with its defaults applied
type settings struct {
	serviceName string
	endpoint    string
	insecure    bool

	tracing  bool
	sampling float64

	metrics  bool
	exporter MetricsExporter
}

// resolve applies the defaults. A nil or disabled Config resolves to no telemetry.
func (c *Config) resolve() settings {
	s := settings{
		serviceName: DefaultServiceName,
		endpoint:    DefaultEndpoint,
		sampling:    DefaultSampling,
		exporter:    MetricsExporterOTLP,
	}
	if c == nil || !c.Enabled {
		return s
	}

	if c.ServiceName != "" {
		s.serviceName = c.ServiceName
	}
	if c.Endpoint != "" {
		s.endpoint = c.Endpoint
	}
	s.insecure = c.Insecure

	if c.Tracing != nil && c.Tracing.Enabled {
		s.tracing = true
		if c.Tracing.Sampling != 0 {
			s.sampling = c.Tracing.Sampling
		}
	}
	if c.Metrics != nil && c.Metrics.Enabled {
		s.metrics = true
		if c.Metrics.Exporter != "" {
			s.exporter = c.Metrics.Exporter
		}
	}
	return s
}

// scraped reports whether metrics are served on /metrics instead of pushed
func (s settings) scraped() bool {
	return s.metrics && s.exporter == MetricsExporterPrometheus
}

// Validate checks the enabled sections. A nil or disabled Config is valid.
func (c *Config) Validate() error {
	if c == nil || !c.Enabled {
		return nil
	}

	var errs []error
	if c.Tracing != nil && c.Tracing.Enabled {
		if s := c.Tracing.Sampling; s < 0 || s > 1.0 {
			errs = append(errs, fmt.Errorf("tracing: sampling must be between 0.0 and 1.0, got %f", s))
		}
	}
	if c.Metrics != nil && c.Metrics.Enabled {
		switch c.Metrics.Exporter {
		case "", MetricsExporterOTLP, MetricsExporterPrometheus:
		default:
			errs = append(errs, fmt.Errorf("metrics: exporter must be one of %q or %q, got %q",
				MetricsExporterOTLP, MetricsExporterPrometheus, c.Metrics.Exporter))
		}
	}
	return errors.Join(errs...)
}
