package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the OpenTelemetry instrumentation configuration, populated
// from environment variables by DefaultConfig.
type Config struct {
	// ServiceName identifies the service in exported telemetry.
	ServiceName string

	// ServiceVersion is the build version.
	ServiceVersion string

	// ServiceInstanceID uniquely identifies this instance; defaults to the
	// hostname when empty.
	ServiceInstanceID string

	// Enabled turns instrumentation on or off entirely
	// (INSTRUMENTATION_ENABLED, default true).
	Enabled bool

	// MetricsExporter is one of "prometheus", "otlp", "stdout"
	// (METRICS_EXPORTER, default "prometheus").
	MetricsExporter string

	// TracingExporter is one of "otlp", "stdout", "none"
	// (TRACING_EXPORTER, default "none").
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint without protocol prefix,
	// e.g. "localhost:4318" (OTEL_EXPORTER_OTLP_ENDPOINT).
	OTLPEndpoint string

	// OTLPInsecure disables TLS on OTLP export. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the trace sampling ratio in [0, 1]
	// (OTEL_TRACES_SAMPLER_ARG, default 0.1).
	TraceSamplingRate float64

	// DetailedLabels adds high-cardinality labels such as the account to
	// tool metrics (METRICS_DETAILED_LABELS, default false). Accounts are
	// anonymized before labeling.
	DetailedLabels bool
}

// DefaultConfig returns a Config populated from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envOrDefault("OTEL_SERVICE_NAME", "workspace-mcp"),
		ServiceVersion:    "unknown",
		ServiceInstanceID: envOrDefault("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:           envBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envOrDefault("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envOrDefault("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloatOrDefault("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    envBoolOrDefault("METRICS_DETAILED_LABELS", false),
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}
	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}
	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}
	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
	}
	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
	}
	return nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func envFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Label value constants.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultExpired = "expired"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Google service names used as metric labels.
const (
	ServiceGmail    = "gmail"
	ServiceDrive    = "drive"
	ServiceDocs     = "docs"
	ServiceSheets   = "sheets"
	ServiceSlides   = "slides"
	ServiceForms    = "forms"
	ServiceChat     = "chat"
	ServiceCalendar = "calendar"
	ServiceTasks    = "tasks"
)
