package constant

// TelemetrySDKName identifies this library in OTEL instrumentation scopes.
const TelemetrySDKName = "lib-guard/opentelemetry"

// MaxMetricLabelLength is the maximum length for metric labels to prevent cardinality explosion.
const MaxMetricLabelLength = 64

// AttrPrefixGuard is the prefix for guard violation span attributes.
const AttrPrefixGuard = "guard."

// Span attribute keys for guard violations.
const (
	AttrGuardAssertion = AttrPrefixGuard + "assertion"
	AttrGuardKind      = AttrPrefixGuard + "kind"
	AttrGuardParameter = AttrPrefixGuard + "parameter"
	AttrGuardMessage   = AttrPrefixGuard + "message"
	AttrGuardComponent = AttrPrefixGuard + "component"
	AttrGuardOperation = AttrPrefixGuard + "operation"
	AttrGuardStack     = AttrPrefixGuard + "stack"
	AttrGuardID        = AttrPrefixGuard + "violation_id"
)

// MetricGuardViolationTotal is the counter metric for failed guard assertions.
const MetricGuardViolationTotal = "guard_violation_total"

// EventGuardViolation is the span event name for guard violations.
const EventGuardViolation = "guard.violation"

// SanitizeMetricLabel truncates a label value to MaxMetricLabelLength
// to prevent metric cardinality explosion in OTEL backends.
func SanitizeMetricLabel(value string) string {
	if len(value) > MaxMetricLabelLength {
		return value[:MaxMetricLabelLength]
	}

	return value
}
