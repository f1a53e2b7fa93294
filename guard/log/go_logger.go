package log

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// logControlCharReplacer escapes control characters that can be used for log injection (CWE-117).
var logControlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func sanitizeLogString(s string) string {
	return logControlCharReplacer.Replace(s)
}

// GoLogger is the Go built-in (log) implementation of Logger.
//
// Messages and string field values are sanitized to prevent log injection (CWE-117).
type GoLogger struct {
	out    *log.Logger
	level  Level
	group  string
	fields []Field
}

// Compile-time assertion: *GoLogger implements Logger.
var _ Logger = (*GoLogger)(nil)

// NewGoLogger creates a GoLogger writing to w at the given verbosity ceiling.
// A nil writer falls back to os.Stderr.
func NewGoLogger(w io.Writer, level Level) *GoLogger {
	if w == nil {
		w = os.Stderr
	}

	return &GoLogger{
		out:   log.New(w, "", log.LstdFlags),
		level: level,
	}
}

// Enabled reports whether level is within the logger's verbosity ceiling.
func (l *GoLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}

	return l.level >= level
}

// Log writes a single line: [level] message key=value ...
func (l *GoLogger) Log(_ context.Context, level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}

	l.writer().Print(l.hydrate(level, msg, fields))
}

// With returns a child logger carrying additional fields.
//
//nolint:ireturn
func (l *GoLogger) With(fields ...Field) Logger {
	if l == nil {
		return &GoLogger{}
	}

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, l.prefixed(fields)...)

	return &GoLogger{
		out:    l.out,
		level:  l.level,
		group:  l.group,
		fields: merged,
	}
}

// WithGroup returns a child logger that prefixes subsequent field keys with name.
//
//nolint:ireturn
func (l *GoLogger) WithGroup(name string) Logger {
	if l == nil {
		return &GoLogger{}
	}

	group := name
	if l.group != "" {
		group = l.group + "." + name
	}

	return &GoLogger{
		out:    l.out,
		level:  l.level,
		group:  group,
		fields: l.fields,
	}
}

// Sync is a no-op; the stdlib logger writes unbuffered.
func (l *GoLogger) Sync(_ context.Context) error { return nil }

func (l *GoLogger) writer() *log.Logger {
	if l.out == nil {
		return log.Default()
	}

	return l.out
}

func (l *GoLogger) prefixed(fields []Field) []Field {
	if l.group == "" {
		return fields
	}

	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Key: l.group + "." + f.Key, Value: f.Value}
	}

	return out
}

func (l *GoLogger) hydrate(level Level, msg string, fields []Field) string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	sb.WriteString(sanitizeLogString(msg))

	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, l.prefixed(fields)...)

	for _, f := range all {
		sb.WriteString(" ")
		sb.WriteString(sanitizeLogString(f.Key))
		sb.WriteString("=")
		sb.WriteString(sanitizeLogString(fmt.Sprintf("%v", f.Value)))
	}

	return sb.String()
}
