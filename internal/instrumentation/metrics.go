package instrumentation

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rlarsen/workspace-mcp/internal/logging"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Metrics records the server's observability metrics. The zero value is a
// no-op recorder, so call sites never need nil checks.
type Metrics struct {
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	detailedLabels bool
}

// NewMetrics creates a Metrics instance with all instruments registered on
// the meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}
	reg := instrumentRegistrar{meter: meter}

	m.toolInvocationsTotal = reg.counter("mcp_tool_invocations_total",
		"Total number of MCP tool invocations", "{invocation}")
	m.toolDuration = reg.histogram("mcp_tool_duration_seconds",
		"MCP tool execution duration in seconds",
		0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0)

	m.googleAPIOperationsTotal = reg.counter("google_api_operations_total",
		"Total number of Google API operations", "{operation}")
	m.googleAPIOperationDuration = reg.histogram("google_api_operation_duration_seconds",
		"Google API operation duration in seconds",
		0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0)

	m.oauthAuthTotal = reg.counter("oauth_auth_total",
		"Total number of OAuth authorization attempts", "{attempt}")
	m.oauthTokenRefreshTotal = reg.counter("oauth_token_refresh_total",
		"Total number of OAuth token refresh attempts", "{attempt}")

	m.httpRequestsTotal = reg.counter("http_requests_total",
		"Total number of HTTP requests", "{request}")
	m.httpRequestDuration = reg.histogram("http_request_duration_seconds",
		"HTTP request duration in seconds",
		0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0)
	m.activeSessions = reg.upDownCounter("active_sessions",
		"Number of active MCP sessions", "{session}")

	if reg.err != nil {
		return nil, reg.err
	}
	return m, nil
}

// instrumentRegistrar collects the first registration error so NewMetrics
// does not need an error check per instrument.
type instrumentRegistrar struct {
	meter metric.Meter
	err   error
}

func (r *instrumentRegistrar) counter(name, desc, unit string) metric.Int64Counter {
	c, err := r.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil && r.err == nil {
		r.err = err
	}
	return c
}

func (r *instrumentRegistrar) histogram(name, desc string, buckets ...float64) metric.Float64Histogram {
	h, err := r.meter.Float64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	if err != nil && r.err == nil {
		r.err = err
	}
	return h
}

func (r *instrumentRegistrar) upDownCounter(name, desc, unit string) metric.Int64UpDownCounter {
	c, err := r.meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil && r.err == nil {
		r.err = err
	}
	return c
}

// RecordToolInvocation records one MCP tool invocation. The account label is
// only attached, anonymized, when detailed labels are enabled.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status, account string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, logging.AnonymizeEmail(account)))
	}
	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGoogleAPIOperation records one Google API call by service, operation
// and status.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}
	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthAuth records one interactive authorization attempt. Result is
// "success" or "failure".
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m.oauthAuthTotal == nil {
		return
	}
	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordOAuthTokenRefresh records one token refresh attempt. Result is
// "success", "failure", or "expired".
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordHTTPRequest records one HTTP request on the streamable transport or
// the metrics server.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}
	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active session gauge.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active session gauge.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, -1)
}
