// Package instrumentation wires OpenTelemetry metrics and tracing for the
// workspace MCP server.
//
// Metrics cover tool invocations, Google API operations, OAuth consent and
// token refresh outcomes, and HTTP traffic on the streamable transport. The
// default exporter is Prometheus, served by the metrics HTTP server; OTLP and
// stdout exporters are available for push-based or development setups.
//
// Everything is optional: with INSTRUMENTATION_ENABLED=false the provider
// hands out no-op recorders and the rest of the server runs unchanged.
package instrumentation
