package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "workspace-mcp", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ExporterPrometheus, cfg.MetricsExporter)
	assert.Equal(t, ExporterNone, cfg.TracingExporter)
	assert.InDelta(t, 0.1, cfg.TraceSamplingRate, 1e-9)
	assert.False(t, cfg.DetailedLabels)
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "custom")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	cfg := DefaultConfig()
	assert.Equal(t, "custom", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ExporterStdout, cfg.MetricsExporter)
	assert.InDelta(t, 0.5, cfg.TraceSamplingRate, 1e-9)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"sampling too high", func(c *Config) { c.TraceSamplingRate = 1.5 }, true},
		{"sampling negative", func(c *Config) { c.TraceSamplingRate = -0.1 }, true},
		{"bad metrics exporter", func(c *Config) { c.MetricsExporter = "statsd" }, true},
		{"bad tracing exporter", func(c *Config) { c.TracingExporter = "jaeger" }, true},
		{"otlp metrics without endpoint", func(c *Config) { c.MetricsExporter = ExporterOTLP }, true},
		{"otlp tracing without endpoint", func(c *Config) { c.TracingExporter = ExporterOTLP }, true},
		{"otlp with endpoint", func(c *Config) {
			c.MetricsExporter = ExporterOTLP
			c.OTLPEndpoint = "localhost:4318"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				ServiceName:       "workspace-mcp",
				Enabled:           true,
				MetricsExporter:   ExporterPrometheus,
				TracingExporter:   ExporterNone,
				TraceSamplingRate: 0.1,
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
