package guard

import (
	"reflect"

	"github.com/shopspring/decimal"
)

// TypeKind discriminates the categories a Type descriptor can target.
type TypeKind uint8

// Type kinds. TypeInvalid is the zero value and is rejected by AssertType.
const (
	TypeInvalid TypeKind = iota
	TypeBool
	TypeNumber
	TypeString
	TypeObject
	TypeNominal
)

// Type describes the expected type of a value for AssertType.
//
// The category descriptors (Bool, Number, String, Object) accept both the bare
// value and a pointer to it. Number also accepts decimal.Decimal amounts. Nominal descriptors built with TypeFor or
// NominalType match a concrete type T (as T or *T) or any implementation of an
// interface type.
type Type struct {
	kind    TypeKind
	nominal reflect.Type
}

// Category descriptors.
var (
	Bool   = Type{kind: TypeBool}
	Number = Type{kind: TypeNumber}
	String = Type{kind: TypeString}
	Object = Type{kind: TypeObject}
)

// TypeFor returns a nominal descriptor for T.
func TypeFor[T any]() Type {
	return Type{kind: TypeNominal, nominal: reflect.TypeOf((*T)(nil)).Elem()}
}

// NominalType returns a nominal descriptor for t. A nil t yields an invalid descriptor.
func NominalType(t reflect.Type) Type {
	if t == nil {
		return Type{}
	}

	return Type{kind: TypeNominal, nominal: t}
}

// Kind returns the descriptor category.
func (t Type) Kind() TypeKind { return t.kind }

// Valid reports whether t can be used with AssertType.
func (t Type) Valid() bool {
	switch t.kind {
	case TypeBool, TypeNumber, TypeString, TypeObject:
		return true
	case TypeNominal:
		return t.nominal != nil
	default:
		return false
	}
}

// Name returns the name used in mismatch messages.
func (t Type) Name() string {
	switch t.kind {
	case TypeBool:
		return "Boolean"
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeObject:
		return "Object"
	case TypeNominal:
		if t.nominal != nil {
			return t.nominal.String()
		}
	}

	return "invalid"
}

// String implements fmt.Stringer.
func (t Type) String() string { return t.Name() }

// matches reports whether value belongs to t. Untyped nil never matches.
func (t Type) matches(value any) bool {
	if value == nil {
		return false
	}

	vt := reflect.TypeOf(value)

	switch t.kind {
	case TypeBool:
		return isKindOrBoxed(vt, isBoolKind)
	case TypeNumber:
		return isKindOrBoxed(vt, isNumberKind) || vt == decimalType || vt == decimalPtrType
	case TypeString:
		return isKindOrBoxed(vt, isStringKind)
	case TypeObject:
		return !isPrimitiveKind(vt.Kind())
	case TypeNominal:
		if t.nominal.Kind() == reflect.Interface {
			return vt.Implements(t.nominal)
		}

		return vt == t.nominal || (vt.Kind() == reflect.Pointer && vt.Elem() == t.nominal)
	default:
		return false
	}
}

var (
	decimalType    = reflect.TypeOf(decimal.Decimal{})
	decimalPtrType = reflect.PointerTo(decimalType)
)

func isKindOrBoxed(vt reflect.Type, accept func(reflect.Kind) bool) bool {
	if accept(vt.Kind()) {
		return true
	}

	return vt.Kind() == reflect.Pointer && accept(vt.Elem().Kind())
}

func isBoolKind(k reflect.Kind) bool { return k == reflect.Bool }

func isStringKind(k reflect.Kind) bool { return k == reflect.String }

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer,
		reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
