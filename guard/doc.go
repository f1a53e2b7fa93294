// Package guard provides argument guards: fail-fast contract checks placed at
// the top of functions.
//
// Every assertion returns nil on success or exactly one categorized error:
//
//	*ArgumentError      a named argument violates its contract (ErrArgument)
//	*MissingValueError  a required value is nil (ErrMissingValue)
//	*TypeMismatchError  a value has the wrong runtime type, or a guard was
//	                    given a malformed descriptor (ErrTypeMismatch)
//	*RangeError         a value lies outside a closed Enum (ErrOutOfRange)
//
// Each assertion checks its own arguments (parameter names, descriptors,
// enums) before the caller's value, and those failures are returned as-is.
//
// # Static assertions
//
//	guard.AssertCondition(condition bool, parameterName, message string) error
//	guard.AssertNotNull(value any, parameterName string) error
//	guard.AssertNotEmpty(value any, parameterName string) error
//	guard.AssertType(value any, typ guard.Type, parameterName string) error
//	guard.AssertEnum(value any, enum *guard.Enum, enumName string) error
//
// Typical usage:
//
//	func Transfer(from, to *Account, amount int64, currency string) error {
//		if err := guard.AssertNotNull(from, "from"); err != nil {
//			return err
//		}
//		if err := guard.AssertCondition(amount > 0, "amount", "amount must be positive."); err != nil {
//			return err
//		}
//		return guard.AssertEnum(currency, Currencies, "Currency")
//	}
//
// # Types and enums
//
// Type descriptors are explicit: Bool, Number, String and Object match a
// category (accepting pointers to the primitive as the boxed form), while
// TypeFor[T]() matches T, *T, or implementations of an interface T.
//
// Enum is a closed name/value set that must be frozen before use:
//
//	var Currencies = guard.FrozenEnum(
//		guard.Member{Name: "BRL", Value: 986},
//		guard.Member{Name: "USD", Value: 840},
//	)
//
// # Enforcer
//
// Enforcer wraps the same assertions with telemetry: a structured log entry,
// a span event on the active span, the guard_violation_total counter (after
// InitGuardMetrics) and the runtime ErrorReporter. All four share a
// violation_id. Caller key/value pairs under sensitive keys are redacted, and
// stacks are attached outside production only.
package guard
