// Package security detects sensitive keys so their values never reach logs,
// spans or error reports.
//
// The guard Enforcer passes every caller key/value pair through Redact before
// emitting a violation.
package security
