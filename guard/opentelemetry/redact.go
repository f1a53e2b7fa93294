package opentelemetry

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
	"github.com/LerianStudio/lib-guard/guard/security"
)

// KeyMatcher reports whether values stored under an attribute or JSON key must be redacted.
type KeyMatcher func(key string) bool

// RedactingExporter wraps a SpanExporter and replaces sensitive string values in
// span and event attributes before they leave the process.
//
// An attribute is redacted when the last dot-separated segment of its key matches
// (so "http.request.header.authorization" is caught). String values holding a
// JSON object or array are walked and sensitive members are replaced in place.
//
// Ended spans are read-only in the SDK, so redaction happens at export time.
type RedactingExporter struct {
	next  sdktrace.SpanExporter
	match KeyMatcher
}

// NewRedactingExporter wraps next. A nil match uses security.IsSensitiveKey.
func NewRedactingExporter(next sdktrace.SpanExporter, match KeyMatcher) *RedactingExporter {
	if match == nil {
		match = security.IsSensitiveKey
	}

	return &RedactingExporter{next: next, match: match}
}

// ExportSpans redacts every span and forwards the batch.
func (e *RedactingExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e == nil || e.next == nil {
		return nil
	}

	out := make([]sdktrace.ReadOnlySpan, len(spans))
	for i, s := range spans {
		out[i] = e.redactSpan(s)
	}

	return e.next.ExportSpans(ctx, out)
}

// Shutdown stops the wrapped exporter.
func (e *RedactingExporter) Shutdown(ctx context.Context) error {
	if e == nil || e.next == nil {
		return nil
	}

	return e.next.Shutdown(ctx)
}

// redactedSpan overrides the attribute views of a ReadOnlySpan.
type redactedSpan struct {
	sdktrace.ReadOnlySpan
	attrs  []attribute.KeyValue
	events []sdktrace.Event
}

func (s redactedSpan) Attributes() []attribute.KeyValue { return s.attrs }

func (s redactedSpan) Events() []sdktrace.Event { return s.events }

func (e *RedactingExporter) redactSpan(s sdktrace.ReadOnlySpan) sdktrace.ReadOnlySpan {
	if s == nil {
		return s
	}

	events := s.Events()
	redactedEvents := make([]sdktrace.Event, len(events))

	for i, ev := range events {
		ev.Attributes = e.redactAttributes(ev.Attributes)
		redactedEvents[i] = ev
	}

	return redactedSpan{
		ReadOnlySpan: s,
		attrs:        e.redactAttributes(s.Attributes()),
		events:       redactedEvents,
	}
}

func (e *RedactingExporter) redactAttributes(attrs []attribute.KeyValue) []attribute.KeyValue {
	if len(attrs) == 0 {
		return attrs
	}

	out := make([]attribute.KeyValue, len(attrs))

	for i, kv := range attrs {
		out[i] = kv

		if kv.Value.Type() != attribute.STRING {
			continue
		}

		key := string(kv.Key)
		val := kv.Value.AsString()

		if next := e.redactString(key, val); next != val {
			out[i] = attribute.String(key, next)
		}
	}

	return out
}

func (e *RedactingExporter) redactString(key, val string) string {
	if !utf8.ValidString(val) {
		val = strings.ToValidUTF8(val, "�")
	}

	if e.match(lastSegment(key)) {
		return constant.ObfuscatedValue
	}

	trimmed := strings.TrimSpace(val)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return val
	}

	var data any
	if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
		return val
	}

	out, err := json.Marshal(e.redactJSON(data))
	if err != nil {
		return val
	}

	return string(out)
}

func (e *RedactingExporter) redactJSON(data any) any {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			if e.match(key) {
				v[key] = constant.ObfuscatedValue
			} else {
				v[key] = e.redactJSON(value)
			}
		}

		return v
	case []any:
		for i, item := range v {
			v[i] = e.redactJSON(item)
		}

		return v
	default:
		return data
	}
}

func lastSegment(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}

	return key
}
