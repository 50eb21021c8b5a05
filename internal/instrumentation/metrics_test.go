package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func newTestMetrics(t *testing.T, detailed bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"), detailed)
	require.NoError(t, err)
	return m, reader
}

func TestZeroValueMetricsIsNoop(t *testing.T) {
	var m Metrics
	ctx := context.Background()

	// Must not panic with uninitialized instruments.
	m.RecordToolInvocation(ctx, "gmail_search_messages", StatusSuccess, "", time.Second)
	m.RecordGoogleAPIOperation(ctx, ServiceGmail, "list", StatusSuccess, time.Second)
	m.RecordOAuthAuth(ctx, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultExpired)
	m.RecordHTTPRequest(ctx, "GET", "/metrics", 200, time.Millisecond)
	m.IncrementActiveSessions(ctx)
	m.DecrementActiveSessions(ctx)
}

func TestRecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	m.RecordToolInvocation(context.Background(), "drive_search_files", StatusSuccess, "user@example.com", 100*time.Millisecond)

	metrics := collect(t, reader)
	inv, ok := metrics["mcp_tool_invocations_total"]
	require.True(t, ok)
	sum := inv.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.EqualValues(t, 1, sum.DataPoints[0].Value)

	// Without detailed labels, no account attribute at all.
	_, found := sum.DataPoints[0].Attributes.Value("account")
	assert.False(t, found)

	_, ok = metrics["mcp_tool_duration_seconds"]
	assert.True(t, ok)
}

func TestRecordToolInvocationDetailedLabelsAnonymized(t *testing.T) {
	m, reader := newTestMetrics(t, true)
	m.RecordToolInvocation(context.Background(), "drive_search_files", StatusError, "user@example.com", time.Millisecond)

	metrics := collect(t, reader)
	sum := metrics["mcp_tool_invocations_total"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	account, found := sum.DataPoints[0].Attributes.Value("account")
	require.True(t, found)
	assert.NotContains(t, account.AsString(), "example.com", "account label must be anonymized")
}

func TestRecordOAuthTokenRefresh(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()
	m.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultExpired)

	metrics := collect(t, reader)
	sum := metrics["oauth_token_refresh_total"].Data.(metricdata.Sum[int64])
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.EqualValues(t, 3, total)
	assert.Len(t, sum.DataPoints, 2, "success and expired results are separate series")
}

func TestActiveSessions(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()
	m.IncrementActiveSessions(ctx)
	m.IncrementActiveSessions(ctx)
	m.DecrementActiveSessions(ctx)

	metrics := collect(t, reader)
	sum := metrics["active_sessions"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.EqualValues(t, 1, sum.DataPoints[0].Value)
}
