package instrumentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	require.NotNil(t, p.Metrics())
	assert.False(t, p.PrometheusEnabled())

	// No-op recorders must be callable.
	p.Metrics().RecordOAuthAuth(context.Background(), OAuthResultSuccess)
	assert.NotNil(t, p.Tracer("test"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderStdoutExporters(t *testing.T) {
	cfg := Config{
		ServiceName:       "workspace-mcp-test",
		ServiceVersion:    "test",
		Enabled:           true,
		MetricsExporter:   ExporterStdout,
		TracingExporter:   ExporterStdout,
		TraceSamplingRate: 0.1,
	}
	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	assert.True(t, p.Enabled())
	assert.NotNil(t, p.Metrics())
	assert.False(t, p.PrometheusEnabled())
	assert.NotNil(t, p.Tracer("test"))
}

func TestNewProviderUnsupportedExporter(t *testing.T) {
	cfg := Config{
		Enabled:         true,
		MetricsExporter: "statsd",
	}
	_, err := NewProvider(context.Background(), cfg)
	assert.Error(t, err)
}
