// Package metrics provides a small caching factory for OpenTelemetry counters.
//
// MetricsFactory lazily creates Int64Counter instruments by name and exposes a
// builder that attaches labels before recording.
package metrics
