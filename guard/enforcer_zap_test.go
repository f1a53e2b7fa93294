//go:build unit

package guard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/LerianStudio/lib-guard/guard"
	constant "github.com/LerianStudio/lib-guard/guard/constants"
	guardzap "github.com/LerianStudio/lib-guard/guard/zap"
)

func TestEnforcer_ZapViolationEntry(t *testing.T) {
	t.Parallel()

	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tracetest.NewSpanRecorder()))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	core, observed := observer.New(zapcore.InfoLevel)
	enforcer := guard.New(context.Background(), guardzap.Wrap(zap.New(core)), "ledger", "transfer")

	ctx, span := provider.Tracer("test").Start(context.Background(), "transfer")
	err := enforcer.Condition(ctx, false, "amount", "amount must be positive.",
		"amount", -5, "api_key", "sk-live-123", "idempotency_key", "req-42")
	span.End()

	require.Error(t, err)
	require.Equal(t, 1, observed.Len())

	entry := observed.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "GUARD VIOLATION: amount must be positive.", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "ArgumentError", fields["kind"])
	assert.Equal(t, "amount", fields["parameter"])
	assert.Equal(t, "Condition", fields["assertion"])
	assert.Equal(t, "ledger", fields["component"])
	assert.Equal(t, "transfer", fields["operation"])
	assert.Equal(t, "-5", fields["amount"])
	assert.Equal(t, constant.ObfuscatedValue, fields["api_key"])
	assert.Equal(t, "req-42", fields["idempotency_key"])
	assert.NotContains(t, fields, "stack")

	id, ok := fields["violation_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestEnforcer_ZapLevelBelowErrorDropsViolation(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.FatalLevel)
	enforcer := guard.New(context.Background(), guardzap.Wrap(zap.New(core)), "ledger", "transfer")

	require.Error(t, enforcer.NotNull(context.Background(), nil, "account"))
	assert.Zero(t, observed.Len())
}
