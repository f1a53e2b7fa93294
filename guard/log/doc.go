// Package log defines the logging interface used by guard and its typed fields.
//
// Adapters (such as the zap package) implement Logger so guard violations are
// reported through whatever backend the host application already runs.
// GoLogger is the dependency-free fallback used when no logger is wired.
package log
