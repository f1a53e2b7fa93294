package runtime

import (
	"context"
	"fmt"
	"sync"
)

// ErrorReporter defines an interface for external error reporting services.
// This abstraction allows integration with error tracking services without
// creating a hard dependency on any specific SDK.
//
// Implementations should:
//   - Handle nil contexts gracefully
//   - Be safe for concurrent use
//   - Not panic themselves
type ErrorReporter interface {
	// CaptureException reports an error to the error tracking service.
	// The tags map can include metadata like "component", "assertion", etc.
	CaptureException(ctx context.Context, err error, tags map[string]string)
}

var (
	errorReporterInstance ErrorReporter
	errorReporterMu       sync.RWMutex
)

// SetErrorReporter configures the global error reporter. Pass nil to disable reporting.
//
// Example with structured logging:
//
//	type logReporter struct {
//	    logger *slog.Logger
//	}
//
//	func (r *logReporter) CaptureException(ctx context.Context, err error, tags map[string]string) {
//	    attrs := make([]any, 0, len(tags)*2)
//	    for k, v := range tags {
//	        attrs = append(attrs, k, v)
//	    }
//	    r.logger.ErrorContext(ctx, "guard violation", append(attrs, "error", err)...)
//	}
//
//	runtime.SetErrorReporter(&logReporter{logger: slog.Default()})
func SetErrorReporter(reporter ErrorReporter) {
	errorReporterMu.Lock()
	defer errorReporterMu.Unlock()

	errorReporterInstance = reporter
}

// GetErrorReporter returns the currently configured error reporter, or nil.
func GetErrorReporter() ErrorReporter {
	errorReporterMu.RLock()
	defer errorReporterMu.RUnlock()

	return errorReporterInstance
}

var (
	// productionMode controls whether sensitive data is redacted in reports and logs.
	productionMode   bool
	productionModeMu sync.RWMutex
)

const maxStackLen = 4096

// SetProductionMode enables or disables production mode.
// In production mode, stack traces and error details are redacted from reports.
func SetProductionMode(enabled bool) {
	productionModeMu.Lock()
	defer productionModeMu.Unlock()

	productionMode = enabled
}

// IsProductionMode returns whether production mode is enabled.
func IsProductionMode() bool {
	productionModeMu.RLock()
	defer productionModeMu.RUnlock()

	return productionMode
}

// ReportError forwards err to the configured ErrorReporter, if any.
// tags is copied; in production mode the error is replaced by its type name and
// the stack is dropped, otherwise the stack is attached as "stack_trace" (truncated).
func ReportError(ctx context.Context, err error, stack []byte, tags map[string]string) {
	if err == nil {
		return
	}

	reporter := GetErrorReporter()
	if reporter == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	isProduction := IsProductionMode()

	reportTags := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		reportTags[k] = v
	}

	if len(stack) > 0 && !isProduction {
		stackStr := string(stack)
		if len(stackStr) > maxStackLen {
			stackStr = stackStr[:maxStackLen] + "\n...[truncated]"
		}

		reportTags["stack_trace"] = stackStr
	}

	reporter.CaptureException(ctx, redact(err, isProduction), reportTags)
}

// redactedError carries only the dynamic type of the original error.
type redactedError struct {
	typeName string
}

func (e *redactedError) Error() string {
	return e.typeName + " (details redacted)"
}

func redact(err error, isProduction bool) error {
	if !isProduction {
		return err
	}

	return &redactedError{typeName: fmt.Sprintf("%T", err)}
}
