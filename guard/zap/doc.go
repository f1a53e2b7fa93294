// Package zap adapts go.uber.org/zap to the guard log.Logger interface.
//
// Wrap an existing *zap.Logger or build one with New, then pass it to
// guard.New. Violation fields keep their zap types, the Enforcer's stack lands
// in the entry's stacktrace slot, and entries logged under an active span carry
// trace_id and span_id. New also tees entries into the otelzap bridge.
package zap
