package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Resolve(t *testing.T) {
	t.Parallel()

	defaults := settings{
		serviceName: DefaultServiceName,
		endpoint:    DefaultEndpoint,
		sampling:    DefaultSampling,
		exporter:    MetricsExporterOTLP,
	}

	tests := []struct {
		name     string
		config   *Config
		expected settings
		scraped  bool
	}{
		{name: "nil config", expected: defaults},
		{
			name: "disabled config ignores its sections",
			config: &Config{
				ServiceName: "tailspin-catalog",
				Tracing:     &TracingConfig{Enabled: true},
				Metrics:     &MetricsConfig{Enabled: true, Exporter: MetricsExporterPrometheus},
			},
			expected: defaults,
		},
		{
			name:   "tracing with default sampling",
			config: &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true}},
			expected: settings{
				serviceName: DefaultServiceName,
				endpoint:    DefaultEndpoint,
				tracing:     true,
				sampling:    DefaultSampling,
				exporter:    MetricsExporterOTLP,
			},
		},
		{
			name: "catalog mirror scraped by prometheus",
			config: &Config{
				Enabled:     true,
				ServiceName: "catalog-mirror",
				Endpoint:    "collector.example.com:4318",
				Insecure:    true,
				Tracing:     &TracingConfig{Enabled: true, Sampling: 0.1},
				Metrics:     &MetricsConfig{Enabled: true, Exporter: MetricsExporterPrometheus},
			},
			expected: settings{
				serviceName: "catalog-mirror",
				endpoint:    "collector.example.com:4318",
				insecure:    true,
				tracing:     true,
				sampling:    0.1,
				metrics:     true,
				exporter:    MetricsExporterPrometheus,
			},
			scraped: true,
		},
		{
			name:   "metrics pushed over otlp by default",
			config: &Config{Enabled: true, Metrics: &MetricsConfig{Enabled: true}},
			expected: settings{
				serviceName: DefaultServiceName,
				endpoint:    DefaultEndpoint,
				sampling:    DefaultSampling,
				metrics:     true,
				exporter:    MetricsExporterOTLP,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.config.resolve()
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.scraped, got.scraped())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *Config
		wantErr []string
	}{
		{name: "nil config"},
		{
			name:   "disabled config is not checked",
			config: &Config{Tracing: &TracingConfig{Enabled: true, Sampling: 7}},
		},
		{
			name:   "disabled section is not checked",
			config: &Config{Enabled: true, Metrics: &MetricsConfig{Exporter: "statsd"}},
		},
		{
			name: "valid sections",
			config: &Config{
				Enabled: true,
				Tracing: &TracingConfig{Enabled: true, Sampling: 1.0},
				Metrics: &MetricsConfig{Enabled: true, Exporter: MetricsExporterOTLP},
			},
		},
		{
			name:    "sampling above one",
			config:  &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true, Sampling: 1.5}},
			wantErr: []string{"tracing: sampling must be between 0.0 and 1.0"},
		},
		{
			name: "every invalid section is reported",
			config: &Config{
				Enabled: true,
				Tracing: &TracingConfig{Enabled: true, Sampling: -0.1},
				Metrics: &MetricsConfig{Enabled: true, Exporter: "statsd"},
			},
			wantErr: []string{"tracing: sampling", `metrics: exporter must be one of "otlp" or "prometheus", got "statsd"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
