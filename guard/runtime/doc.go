// Package runtime holds process-wide switches shared by guard: production mode
// (redaction of stacks and error details) and the pluggable ErrorReporter.
package runtime
