package metrics

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrNilCounter is returned when a counter builder has no instrument.
var ErrNilCounter = errors.New("counter instrument is nil")

// CounterBuilder records counter increments with an immutable label set.
type CounterBuilder struct {
	counter metric.Int64Counter
	name    string
	attrs   []attribute.KeyValue
}

// WithLabels returns a copy of the builder with labels added as string attributes.
func (c *CounterBuilder) WithLabels(labels map[string]string) *CounterBuilder {
	builder := c.clone(len(labels))

	for key, value := range labels {
		builder.attrs = append(builder.attrs, attribute.String(key, value))
	}

	return builder
}

// WithAttributes returns a copy of the builder with attrs added.
func (c *CounterBuilder) WithAttributes(attrs ...attribute.KeyValue) *CounterBuilder {
	builder := c.clone(len(attrs))
	builder.attrs = append(builder.attrs, attrs...)

	return builder
}

// Add records a counter increment.
func (c *CounterBuilder) Add(ctx context.Context, value int64) error {
	if c == nil || c.counter == nil {
		return ErrNilCounter
	}

	c.counter.Add(ctx, value, metric.WithAttributes(c.attrs...))

	return nil
}

// AddOne increments the counter by one.
func (c *CounterBuilder) AddOne(ctx context.Context) error {
	return c.Add(ctx, 1)
}

// Name returns the instrument name.
func (c *CounterBuilder) Name() string {
	return c.name
}

func (c *CounterBuilder) clone(extra int) *CounterBuilder {
	builder := &CounterBuilder{
		counter: c.counter,
		name:    c.name,
		attrs:   make([]attribute.KeyValue, 0, len(c.attrs)+extra),
	}

	builder.attrs = append(builder.attrs, c.attrs...)

	return builder
}
