package zap

import (
	"context"
	"fmt"
	"strings"
	"time"

	logpkg "github.com/LerianStudio/lib-guard/guard/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes guard log entries through zap. Hand it to guard.New so the
// Enforcer's violation entries reach zap with typed fields.
type Logger struct {
	base  *zap.Logger
	level zap.AtomicLevel
}

var _ logpkg.Logger = (*Logger)(nil)

// newlineEscaper keeps a message on one line for console encoders (CWE-117).
var newlineEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// Wrap adapts an existing zap logger. The level handle of a wrapped logger is
// the zero AtomicLevel; use New when the level must change at runtime.
func Wrap(base *zap.Logger) *Logger {
	return &Logger{base: base}
}

func (l *Logger) logger() *zap.Logger {
	if l == nil || l.base == nil {
		return zap.NewNop()
	}

	return l.base
}

// Log implements log.Logger.
//
// Fields are converted only when the level is enabled. A log.StackKey field
// becomes the entry's stack, and a valid span in ctx adds trace_id and span_id.
func (l *Logger) Log(ctx context.Context, level logpkg.Level, msg string, fields ...logpkg.Field) {
	ce := l.logger().Check(zapLevel(level), newlineEscaper.Replace(msg))
	if ce == nil {
		return
	}

	out := make([]zap.Field, 0, len(fields)+2)

	for _, f := range fields {
		if stack, ok := f.Value.(string); ok && f.Key == logpkg.StackKey {
			ce.Stack = stack
			continue
		}

		out = append(out, toZap(f))
	}

	ce.Write(append(out, spanFields(ctx)...)...)
}

// With returns a child logger carrying fields on every entry.
//
//nolint:ireturn
func (l *Logger) With(fields ...logpkg.Field) logpkg.Logger {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = toZap(f)
	}

	return &Logger{base: l.logger().With(out...), level: l.Level()}
}

// WithGroup nests subsequent fields under name.
//
//nolint:ireturn
func (l *Logger) WithGroup(name string) logpkg.Logger {
	return &Logger{base: l.logger().With(zap.Namespace(name)), level: l.Level()}
}

// Enabled reports whether an entry at level would be written.
func (l *Logger) Enabled(level logpkg.Level) bool {
	return l.logger().Core().Enabled(zapLevel(level))
}

// Sync flushes buffered entries unless ctx is already done.
func (l *Logger) Sync(ctx context.Context) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return l.logger().Sync()
}

// Level returns the runtime-adjustable level handle.
func (l *Logger) Level() zap.AtomicLevel {
	if l == nil {
		return zap.AtomicLevel{}
	}

	return l.level
}

func zapLevel(level logpkg.Level) zapcore.Level {
	switch level {
	case logpkg.LevelDebug:
		return zapcore.DebugLevel
	case logpkg.LevelWarn:
		return zapcore.WarnLevel
	case logpkg.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZap maps a guard field onto the zap field type matching its value, so
// encoders emit numbers and booleans unquoted and errors under their own key.
func toZap(f logpkg.Field) zap.Field {
	switch v := f.Value.(type) {
	case nil:
		return zap.Skip()
	case string:
		return zap.String(f.Key, v)
	case bool:
		return zap.Bool(f.Key, v)
	case int:
		return zap.Int(f.Key, v)
	case int64:
		return zap.Int64(f.Key, v)
	case uint64:
		return zap.Uint64(f.Key, v)
	case float64:
		return zap.Float64(f.Key, v)
	case time.Duration:
		return zap.Duration(f.Key, v)
	case []byte:
		return zap.ByteString(f.Key, v)
	case error:
		return zap.NamedError(f.Key, v)
	case fmt.Stringer:
		return zap.Stringer(f.Key, v)
	default:
		return zap.Any(f.Key, v)
	}
}

func spanFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.Stringer("trace_id", sc.TraceID()),
		zap.Stringer("span_id", sc.SpanID()),
	}
}
