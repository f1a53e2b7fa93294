package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
	"github.com/LerianStudio/lib-guard/guard/log"
	"github.com/LerianStudio/lib-guard/guard/runtime"
	"github.com/LerianStudio/lib-guard/guard/security"
)

// Logger defines the minimal logging interface required by the Enforcer.
// This interface is satisfied by guard/log.Logger.
type Logger interface {
	Log(ctx context.Context, level log.Level, msg string, fields ...log.Field)
}

// fallbackLogger receives violations when no logger is configured.
var fallbackLogger Logger = log.NewGoLogger(os.Stderr, log.LevelError)

// Enforcer runs the package assertions and emits telemetry on failure.
//
// The returned errors are exactly those of the static assertions, so callers
// can match them with errors.Is / errors.As.
type Enforcer struct {
	ctx       context.Context
	logger    Logger
	component string
	operation string
}

// New creates an Enforcer with context, logging, and labels.
// component and operation are used for telemetry labeling.
//
//nolint:contextcheck // Intentionally creates a fallback context when nil is passed
func New(ctx context.Context, logger Logger, component, operation string) *Enforcer {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Enforcer{
		ctx:       ctx,
		logger:    logger,
		component: component,
		operation: operation,
	}
}

// Condition enforces AssertCondition.
//
// Example:
//
//	g := guard.New(ctx, logger, "ledger", "transfer")
//	if err := g.Condition(ctx, amount > 0, "amount", "amount must be positive.", "amount", amount); err != nil {
//		return err
//	}
func (enforcer *Enforcer) Condition(ctx context.Context, condition bool, parameterName, message string, kv ...any) error {
	return enforcer.check(ctx, "Condition", AssertCondition(condition, parameterName, message), kv)
}

// NotNull enforces AssertNotNull.
func (enforcer *Enforcer) NotNull(ctx context.Context, value any, parameterName string, kv ...any) error {
	return enforcer.check(ctx, "NotNull", AssertNotNull(value, parameterName), kv)
}

// NotEmpty enforces AssertNotEmpty.
func (enforcer *Enforcer) NotEmpty(ctx context.Context, value any, parameterName string, kv ...any) error {
	return enforcer.check(ctx, "NotEmpty", AssertNotEmpty(value, parameterName), kv)
}

// Type enforces AssertType.
func (enforcer *Enforcer) Type(ctx context.Context, value any, typ Type, parameterName string, kv ...any) error {
	return enforcer.check(ctx, "Type", AssertType(value, typ, parameterName), kv)
}

// Enum enforces AssertEnum.
func (enforcer *Enforcer) Enum(ctx context.Context, value any, enum *Enum, enumName string, kv ...any) error {
	return enforcer.check(ctx, "Enum", AssertEnum(value, enum, enumName), kv)
}

func (enforcer *Enforcer) check(ctx context.Context, assertion string, err error, kv []any) error {
	if err == nil {
		return nil
	}

	enforcer.fail(ctx, assertion, err, kv)

	return err
}

func (enforcer *Enforcer) fail(ctx context.Context, assertion string, err error, kv []any) {
	ctx, logger, component, operation := enforcer.values(ctx)

	v := violation{
		id:        uuid.NewString(),
		assertion: assertion,
		component: component,
		operation: operation,
		message:   err.Error(),
	}

	var entry Error
	if errors.As(err, &entry) {
		v.kind = string(entry.Kind())
		v.parameter = entry.Parameter()
	}

	if shouldIncludeStack() {
		v.stack = debug.Stack()
	}

	logViolation(ctx, logger, v, kv)
	recordViolationMetric(ctx, v)
	recordViolationToSpan(ctx, v)
	runtime.ReportError(ctx, err, v.stack, v.tags())
}

func (enforcer *Enforcer) values(ctx context.Context) (context.Context, Logger, string, string) {
	if enforcer == nil {
		if ctx == nil {
			ctx = context.Background()
		}

		return ctx, nil, "", ""
	}

	if ctx == nil {
		ctx = enforcer.ctx
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return ctx, enforcer.logger, enforcer.component, enforcer.operation
}

// violation is the telemetry view of one failed assertion. id correlates the
// log entry, span event and error report of the same failure.
type violation struct {
	id        string
	assertion string
	kind      string
	parameter string
	message   string
	component string
	operation string
	stack     []byte
}

func (v violation) tags() map[string]string {
	tags := map[string]string{
		"violation_id": v.id,
		"assertion":    v.assertion,
		"kind":         v.kind,
	}

	if v.component != "" {
		tags["component"] = v.component
	}

	if v.operation != "" {
		tags["operation"] = v.operation
	}

	return tags
}

func shouldIncludeStack() bool {
	if runtime.IsProductionMode() {
		return false
	}

	// Fallback for hosts that never configured the runtime package.
	env := strings.TrimSpace(os.Getenv("ENV"))
	goEnv := strings.TrimSpace(os.Getenv("GO_ENV"))

	return !strings.EqualFold(env, "production") && !strings.EqualFold(goEnv, "production")
}

const maxValueLength = 200 // Truncate values longer than this

// truncateValue truncates long values for logging safety.
func truncateValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) <= maxValueLength {
		return s
	}

	return s[:maxValueLength] + "... (truncated " + strconv.Itoa(len(s)-maxValueLength) + " chars)"
}

// violationFields builds the structured fields of a violation log entry.
// Values of sensitive keys are redacted before truncation.
func violationFields(v violation, kv []any) []log.Field {
	const fixedFields = 7

	fields := make([]log.Field, 0, fixedFields+(len(kv)+1)/2)
	fields = append(fields,
		log.String("violation_id", v.id),
		log.String("assertion", v.assertion),
		log.String("kind", v.kind),
		log.String("parameter", v.parameter),
	)

	if v.component != "" {
		fields = append(fields, log.String("component", v.component))
	}

	if v.operation != "" {
		fields = append(fields, log.String("operation", v.operation))
	}

	for _, f := range log.Pairs(kv...) {
		fields = append(fields, log.String(f.Key, truncateValue(security.Redact(f.Key, f.Value))))
	}

	if len(v.stack) > 0 {
		fields = append(fields, log.String(log.StackKey, string(v.stack)))
	}

	return fields
}

func logViolation(ctx context.Context, logger Logger, v violation, kv []any) {
	if logger == nil {
		logger = fallbackLogger
	}

	logger.Log(ctx, log.LevelError, "GUARD VIOLATION: "+v.message, violationFields(v, kv)...)
}

// ViolationSpanEventName is the event name used when recording violations on spans.
const ViolationSpanEventName = constant.EventGuardViolation

func recordViolationToSpan(ctx context.Context, v violation) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(constant.AttrGuardID, v.id),
		attribute.String(constant.AttrGuardAssertion, v.assertion),
		attribute.String(constant.AttrGuardKind, v.kind),
		attribute.String(constant.AttrGuardParameter, v.parameter),
		attribute.String(constant.AttrGuardMessage, v.message),
	}

	if v.component != "" {
		attrs = append(attrs, attribute.String(constant.AttrGuardComponent, v.component))
	}

	if v.operation != "" {
		attrs = append(attrs, attribute.String(constant.AttrGuardOperation, v.operation))
	}

	if len(v.stack) > 0 {
		attrs = append(attrs, attribute.String(constant.AttrGuardStack, string(v.stack)))
	}

	span.AddEvent(ViolationSpanEventName, trace.WithAttributes(attrs...))
	span.RecordError(fmt.Errorf("guard violation: %s", v.message))
	span.SetStatus(codes.Error, violationStatusMessage(v.component, v.operation))
}

func violationStatusMessage(component, operation string) string {
	switch {
	case component != "" && operation != "":
		return fmt.Sprintf("guard violation in %s/%s", component, operation)
	case component != "":
		return "guard violation in " + component
	case operation != "":
		return "guard violation in " + operation
	default:
		return "guard violation"
	}
}
