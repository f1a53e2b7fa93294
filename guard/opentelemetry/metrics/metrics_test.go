//go:build unit

package metrics

import (
	"context"
	"testing"

	"github.com/LerianStudio/lib-guard/guard/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestFactory(t *testing.T) (*MetricsFactory, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	factory, err := NewMetricsFactory(provider.Meter("test"), &log.NopLogger{})
	require.NoError(t, err)

	return factory, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "expected Sum[int64] data, got %T", m.Data)

			return sum.DataPoints
		}
	}

	return nil
}

func TestNewMetricsFactory_NilMeter(t *testing.T) {
	t.Parallel()

	factory, err := NewMetricsFactory(nil, nil)
	require.ErrorIs(t, err, ErrNilMeter)
	assert.Nil(t, factory)
}

func TestCounter_RecordsWithLabels(t *testing.T) {
	t.Parallel()

	factory, reader := newTestFactory(t)

	counter, err := factory.Counter(Metric{Name: "violations", Unit: "1", Description: "test"})
	require.NoError(t, err)
	assert.Equal(t, "violations", counter.Name())

	labelled := counter.WithLabels(map[string]string{"kind": "RangeError"})
	require.NoError(t, labelled.AddOne(context.Background()))
	require.NoError(t, labelled.Add(context.Background(), 2))
	require.NoError(t, counter.WithAttributes(attribute.String("kind", "ArgumentError")).AddOne(context.Background()))

	points := collectSum(t, reader, "violations")
	require.Len(t, points, 2)

	byKind := map[string]int64{}
	for _, p := range points {
		kind, ok := p.Attributes.Value("kind")
		require.True(t, ok)
		byKind[kind.AsString()] = p.Value
	}

	assert.Equal(t, int64(3), byKind["RangeError"])
	assert.Equal(t, int64(1), byKind["ArgumentError"])
}

func TestCounter_IsCached(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)

	first, err := factory.Counter(Metric{Name: "cached"})
	require.NoError(t, err)

	second, err := factory.Counter(Metric{Name: "cached"})
	require.NoError(t, err)

	assert.Equal(t, first.counter, second.counter)
}

func TestWithLabels_DoesNotMutateParent(t *testing.T) {
	t.Parallel()

	factory := NewNopFactory()

	parent, err := factory.Counter(Metric{Name: "parent"})
	require.NoError(t, err)

	child := parent.WithLabels(map[string]string{"a": "b"})
	assert.Empty(t, parent.attrs)
	assert.Len(t, child.attrs, 1)
}

func TestCounterBuilder_NilInstrument(t *testing.T) {
	t.Parallel()

	var nilBuilder *CounterBuilder
	require.ErrorIs(t, nilBuilder.AddOne(context.Background()), ErrNilCounter)
	require.ErrorIs(t, (&CounterBuilder{}).AddOne(context.Background()), ErrNilCounter)
}
