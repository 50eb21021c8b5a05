package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
)

func TestLivenessAlwaysOK(t *testing.T) {
	h := NewHealthChecker(nil)
	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestReadiness(t *testing.T) {
	manager := auth.NewManager(auth.NewFileStore(t.TempDir()))
	sc := NewServerContext(context.Background(), manager)
	defer sc.Shutdown()
	h := NewHealthChecker(sc)

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h.SetReady(false)
	rec = httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.SetReady(true)
	require.NoError(t, sc.Shutdown())
	rec = httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "shutting down", resp.Checks["shutdown"])
}

func TestNewMetricsServerRequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{})
	assert.Error(t, err)
}

func TestNewMetricsServerRequiresEnabledProvider(t *testing.T) {
	p, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{Enabled: false})
	require.NoError(t, err)
	_, err = NewMetricsServer(MetricsServerConfig{Provider: p})
	assert.Error(t, err)
}

func TestNewMetricsServerRequiresPrometheusExporter(t *testing.T) {
	p, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName:     "test",
		Enabled:         true,
		MetricsExporter: instrumentation.ExporterStdout,
		TracingExporter: instrumentation.ExporterNone,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	_, err = NewMetricsServer(MetricsServerConfig{Provider: p})
	assert.Error(t, err)
}
