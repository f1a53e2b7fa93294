// Package constant provides shared constant values used across the library.
//
// Keep this package free of runtime behavior beyond label sanitization.
// It is used by the guard, runtime and logging helpers to avoid duplicated literals.
package constant
