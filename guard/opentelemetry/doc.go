// Package opentelemetry wires guard violations to an OpenTelemetry collector.
//
// NewTelemetry builds tracer, meter and logger providers, with OTLP/gRPC
// exporters when enabled and in-process providers otherwise. Its MetricsFactory
// feeds guard.InitGuardMetrics. Trace exports pass through RedactingExporter,
// which masks sensitive attribute values before they leave the process.
package opentelemetry
