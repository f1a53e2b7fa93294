//go:build unit

package opentelemetry

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
)

func exportOne(t *testing.T, match KeyMatcher, fn func(span trace.Span)) tracetest.SpanStub {
	t.Helper()

	mem := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewRedactingExporter(mem, match)))

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	_, span := provider.Tracer("test").Start(context.Background(), "transfer")
	fn(span)
	span.End()

	spans := mem.GetSpans()
	require.Len(t, spans, 1)

	return spans[0]
}

func attrMap(attrs []attribute.KeyValue) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value.Emit()
	}

	return m
}

func TestRedactingExporter_SpanAttributes(t *testing.T) {
	t.Parallel()

	stub := exportOne(t, nil, func(span trace.Span) {
		span.SetAttributes(
			attribute.String("account.id", "acc-1"),
			attribute.String("http.request.header.authorization", "Bearer abc"),
			attribute.String("password", "hunter2"),
			attribute.String("cache.key", "acc-1:balance"),
			attribute.Int("retries", 3),
		)
	})

	attrs := attrMap(stub.Attributes)
	assert.Equal(t, "acc-1", attrs["account.id"])
	assert.Equal(t, constant.ObfuscatedValue, attrs["http.request.header.authorization"])
	assert.Equal(t, constant.ObfuscatedValue, attrs["password"])
	assert.Equal(t, "acc-1:balance", attrs["cache.key"])
	assert.Equal(t, "3", attrs["retries"])
}

func TestRedactingExporter_JSONValues(t *testing.T) {
	t.Parallel()

	stub := exportOne(t, nil, func(span trace.Span) {
		span.SetAttributes(attribute.String("request.body",
			`{"user":"ana","credentials":{"x":1},"items":[{"api_key":"k","qty":2}]}`))
	})

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(attrMap(stub.Attributes)["request.body"]), &body))

	assert.Equal(t, "ana", body["user"])
	assert.Equal(t, constant.ObfuscatedValue, body["credentials"])

	items, ok := body["items"].([]any)
	require.True(t, ok)

	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, constant.ObfuscatedValue, item["api_key"])
	assert.InDelta(t, 2.0, item["qty"], 0)
}

func TestRedactingExporter_EventAttributes(t *testing.T) {
	t.Parallel()

	stub := exportOne(t, nil, func(span trace.Span) {
		span.AddEvent(constant.EventGuardViolation, trace.WithAttributes(
			attribute.String(constant.AttrGuardParameter, "token"),
			attribute.String("client_secret", "s3cr3t"),
		))
	})

	require.Len(t, stub.Events, 1)

	attrs := attrMap(stub.Events[0].Attributes)
	assert.Equal(t, "token", attrs[constant.AttrGuardParameter])
	assert.Equal(t, constant.ObfuscatedValue, attrs["client_secret"])
}

func TestRedactingExporter_CustomMatcherAndInvalidUTF8(t *testing.T) {
	t.Parallel()

	match := func(key string) bool { return strings.EqualFold(key, "iban") }

	stub := exportOne(t, match, func(span trace.Span) {
		span.SetAttributes(
			attribute.String("payee.IBAN", "DE89370400440532013000"),
			attribute.String("password", "kept by custom matcher"),
			attribute.String("note", "bad\xffbyte"),
			attribute.String("raw", "{not json"),
		)
	})

	attrs := attrMap(stub.Attributes)
	assert.Equal(t, constant.ObfuscatedValue, attrs["payee.IBAN"])
	assert.Equal(t, "kept by custom matcher", attrs["password"])
	assert.Equal(t, "bad�byte", attrs["note"])
	assert.Equal(t, "{not json", attrs["raw"])
}

func TestRedactingExporter_NilSafe(t *testing.T) {
	t.Parallel()

	var e *RedactingExporter

	require.NoError(t, e.ExportSpans(context.Background(), nil))
	require.NoError(t, e.Shutdown(context.Background()))

	require.NoError(t, NewRedactingExporter(nil, nil).ExportSpans(context.Background(), nil))
}

func TestLastSegment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "authorization", lastSegment("http.request.header.authorization"))
	assert.Equal(t, "token", lastSegment("token"))
	assert.Empty(t, lastSegment("trailing."))
}
