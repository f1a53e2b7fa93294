package guard

import (
	"reflect"

	"github.com/LerianStudio/lib-guard/guard/internal/nilcheck"
)

// validateParameterName rejects an empty parameter name. It is the first check
// of every assertion and never calls back into the assertions themselves.
func validateParameterName(parameterName string) error {
	if parameterName == "" {
		return NewArgumentError("parameterName")
	}

	return nil
}

// AssertCondition returns an *ArgumentError carrying message when condition is false.
//
// parameterName and message must be non-empty; otherwise an *ArgumentError
// citing "parameterName" or "message" is returned before condition is considered.
//
// Example:
//
//	if err := guard.AssertCondition(amount > 0, "amount", "amount must be positive."); err != nil {
//		return err
//	}
func AssertCondition(condition bool, parameterName, message string) error {
	if err := validateParameterName(parameterName); err != nil {
		return err
	}

	if message == "" {
		return NewArgumentError("message")
	}

	if !condition {
		return NewArgumentError(parameterName, message)
	}

	return nil
}

// AssertNotNull returns a *MissingValueError when value is nil, including typed
// nil pointers, maps, slices, channels, funcs and interfaces.
func AssertNotNull(value any, parameterName string) error {
	if err := validateParameterName(parameterName); err != nil {
		return err
	}

	if nilcheck.Interface(value) {
		return &MissingValueError{ParameterName: parameterName}
	}

	return nil
}

// AssertNotEmpty returns an *ArgumentError when value is an empty string,
// slice, array or map. Pointers are followed first, so a pointer to an empty
// string is empty too.
//
// Nil values (including nil slices and maps) are reported as missing, not
// empty. Every other shape (numbers, bools, structs, funcs, channels) is never
// considered empty.
func AssertNotEmpty(value any, parameterName string) error {
	if err := AssertNotNull(value, parameterName); err != nil {
		return err
	}

	rv, ok := nilcheck.Unbox(value)
	if !ok {
		return &MissingValueError{ParameterName: parameterName}
	}

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return NewArgumentError(parameterName)
		}
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return NewArgumentError(parameterName)
		}
	case reflect.Map:
		if rv.Len() == 0 {
			return NewArgumentError(parameterName)
		}
	}

	return nil
}

// AssertType returns a *TypeMismatchError when value does not belong to typ.
//
// An invalid descriptor (the zero Type, or NominalType(nil)) is a misuse of the
// guard and yields a *TypeMismatchError without a parameter name.
func AssertType(value any, typ Type, parameterName string) error {
	if !typ.Valid() {
		return &TypeMismatchError{Message: "type must be a valid type descriptor."}
	}

	if err := validateParameterName(parameterName); err != nil {
		return err
	}

	if !typ.matches(value) {
		return newTypeMismatch(parameterName, typ.Name())
	}

	return nil
}

// AssertEnum returns a *RangeError when value is neither a member name nor a
// member value of enum.
//
// enum must be frozen: an unfrozen enum yields a *TypeMismatchError before
// membership is checked.
//
// Example:
//
//	var Status = guard.FrozenEnum(
//		guard.Member{Name: "Active", Value: 1},
//		guard.Member{Name: "Blocked", Value: 2},
//	)
//
//	if err := guard.AssertEnum(input.Status, Status, "Status"); err != nil {
//		return err
//	}
func AssertEnum(value any, enum *Enum, enumName string) error {
	if err := AssertNotNull(value, "value"); err != nil {
		return err
	}

	if enum == nil {
		return &MissingValueError{ParameterName: "enum"}
	}

	if enumName == "" {
		return NewArgumentError("enumName")
	}

	if !enum.IsFrozen() {
		return &TypeMismatchError{
			ParameterName: "enum",
			Expected:      "frozen enum",
			Message:       "specified enum " + enumName + " isn't frozen.",
		}
	}

	if !enum.Contains(value) {
		return &RangeError{Value: value, Domain: enumName}
	}

	return nil
}
