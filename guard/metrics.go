package guard

import (
	"context"
	"fmt"
	"sync"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
	"github.com/LerianStudio/lib-guard/guard/log"
	"github.com/LerianStudio/lib-guard/guard/opentelemetry/metrics"
)

// GuardMetrics records guard violations through a MetricsFactory.
type GuardMetrics struct {
	factory *metrics.MetricsFactory
}

var guardViolationMetric = metrics.Metric{
	Name:        constant.MetricGuardViolationTotal,
	Unit:        "1",
	Description: "Total number of failed guard assertions",
}

var (
	guardMetricsInstance *GuardMetrics
	guardMetricsMu       sync.RWMutex
)

// InitGuardMetrics initializes violation metrics with the provided MetricsFactory.
// Call once during startup after telemetry is initialized; later calls are no-ops.
func InitGuardMetrics(factory *metrics.MetricsFactory) {
	guardMetricsMu.Lock()
	defer guardMetricsMu.Unlock()

	if factory == nil || guardMetricsInstance != nil {
		return
	}

	guardMetricsInstance = &GuardMetrics{factory: factory}
}

// GetGuardMetrics returns the singleton, or nil if InitGuardMetrics has not been called.
func GetGuardMetrics() *GuardMetrics {
	guardMetricsMu.RLock()
	defer guardMetricsMu.RUnlock()

	return guardMetricsInstance
}

// ResetGuardMetrics clears the singleton (useful for tests).
func ResetGuardMetrics() {
	guardMetricsMu.Lock()
	defer guardMetricsMu.Unlock()

	guardMetricsInstance = nil
}

// RecordViolation increments guard_violation_total with sanitized labels.
// A nil receiver is a no-op.
func (gm *GuardMetrics) RecordViolation(ctx context.Context, component, operation, assertion, kind string) {
	if gm == nil || gm.factory == nil {
		return
	}

	counter, err := gm.factory.Counter(guardViolationMetric)
	if err != nil {
		fallbackLogger.Log(ctx, log.LevelError, fmt.Sprintf("failed to create guard metric counter: %v", err))
		return
	}

	err = counter.
		WithLabels(map[string]string{
			"component": constant.SanitizeMetricLabel(component),
			"operation": constant.SanitizeMetricLabel(operation),
			"assertion": constant.SanitizeMetricLabel(assertion),
			"kind":      constant.SanitizeMetricLabel(kind),
		}).
		AddOne(ctx)
	if err != nil {
		fallbackLogger.Log(ctx, log.LevelError, fmt.Sprintf("failed to record guard metric: %v", err))
	}
}

func recordViolationMetric(ctx context.Context, v violation) {
	if gm := GetGuardMetrics(); gm != nil {
		gm.RecordViolation(ctx, v.component, v.operation, v.assertion, v.kind)
	}
}
