package guard

import (
	"errors"
	"fmt"
)

// ErrorKind is the fixed tag identifying a category of guard error.
type ErrorKind string

// Error kinds returned by the assertions.
const (
	KindArgument     ErrorKind = "ArgumentError"
	KindMissingValue ErrorKind = "MissingValueError"
	KindTypeMismatch ErrorKind = "TypeMismatchError"
	KindRange        ErrorKind = "RangeError"
)

// Sentinels matched by errors.Is through any guard error of the same kind.
var (
	ErrArgument     = errors.New("argument violates its contract")
	ErrMissingValue = errors.New("required value is missing")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrOutOfRange   = errors.New("value out of range")
)

// Error is implemented by every error returned from this package.
type Error interface {
	error
	Kind() ErrorKind
	// Parameter names the offending argument; empty when the failure is about
	// malformed guard usage rather than a named parameter.
	Parameter() string
}

// ArgumentError reports that a named argument violates its contract.
type ArgumentError struct {
	ParameterName string
	Message       string
}

// NewArgumentError builds an ArgumentError for parameterName. The first
// non-empty message is used; otherwise a default message is synthesized.
//
// The constructor validates its own input: an empty parameterName yields a
// *MissingValueError citing "parameterName" instead of an ArgumentError.
func NewArgumentError(parameterName string, message ...string) error {
	if parameterName == "" {
		return &MissingValueError{ParameterName: "parameterName"}
	}

	entry := &ArgumentError{ParameterName: parameterName}

	for _, m := range message {
		if m != "" {
			entry.Message = m
			break
		}
	}

	if entry.Message == "" {
		entry.Message = fmt.Sprintf("The value of %q is invalid.", parameterName)
	}

	return entry
}

// Error returns the contract violation message.
func (entry *ArgumentError) Error() string {
	if entry == nil {
		return ErrArgument.Error()
	}

	return entry.Message
}

// Kind returns KindArgument.
func (entry *ArgumentError) Kind() ErrorKind { return KindArgument }

// Parameter returns the offending parameter name.
func (entry *ArgumentError) Parameter() string {
	if entry == nil {
		return ""
	}

	return entry.ParameterName
}

// Unwrap returns ErrArgument.
func (entry *ArgumentError) Unwrap() error { return ErrArgument }

// MissingValueError reports a nil or unset required value.
type MissingValueError struct {
	ParameterName string
}

// Error returns "<parameter> is not defined."
func (entry *MissingValueError) Error() string {
	if entry == nil {
		return ErrMissingValue.Error()
	}

	return entry.ParameterName + " is not defined."
}

// Kind returns KindMissingValue.
func (entry *MissingValueError) Kind() ErrorKind { return KindMissingValue }

// Parameter returns the offending parameter name.
func (entry *MissingValueError) Parameter() string {
	if entry == nil {
		return ""
	}

	return entry.ParameterName
}

// Unwrap returns ErrMissingValue.
func (entry *MissingValueError) Unwrap() error { return ErrMissingValue }

// TypeMismatchError reports a value whose runtime type differs from the
// expected one, or a malformed type/enum argument passed to a guard itself.
type TypeMismatchError struct {
	ParameterName string
	Expected      string
	Message       string
}

func newTypeMismatch(parameterName, expected string) *TypeMismatchError {
	return &TypeMismatchError{
		ParameterName: parameterName,
		Expected:      expected,
		Message:       fmt.Sprintf("%s is not of expected type: %s.", parameterName, expected),
	}
}

// Error returns the mismatch description.
func (entry *TypeMismatchError) Error() string {
	if entry == nil || entry.Message == "" {
		return ErrTypeMismatch.Error()
	}

	return entry.Message
}

// Kind returns KindTypeMismatch.
func (entry *TypeMismatchError) Kind() ErrorKind { return KindTypeMismatch }

// Parameter returns the offending parameter name, if any.
func (entry *TypeMismatchError) Parameter() string {
	if entry == nil {
		return ""
	}

	return entry.ParameterName
}

// Unwrap returns ErrTypeMismatch.
func (entry *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// RangeError reports a value outside a closed domain such as an Enum.
type RangeError struct {
	Value  any
	Domain string
}

// Error returns "<value> is not a valid value of <domain>."
func (entry *RangeError) Error() string {
	if entry == nil {
		return ErrOutOfRange.Error()
	}

	return fmt.Sprintf("%v is not a valid value of %s.", entry.Value, entry.Domain)
}

// Kind returns KindRange.
func (entry *RangeError) Kind() ErrorKind { return KindRange }

// Parameter returns the domain name.
func (entry *RangeError) Parameter() string {
	if entry == nil {
		return ""
	}

	return entry.Domain
}

// Unwrap returns ErrOutOfRange.
func (entry *RangeError) Unwrap() error { return ErrOutOfRange }

// KindOf returns the kind of the first guard error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var entry Error
	if errors.As(err, &entry) {
		return entry.Kind(), true
	}

	return "", false
}

var (
	_ Error = (*ArgumentError)(nil)
	_ Error = (*MissingValueError)(nil)
	_ Error = (*TypeMismatchError)(nil)
	_ Error = (*RangeError)(nil)
)
