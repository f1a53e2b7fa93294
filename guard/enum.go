package guard

import (
	"math"
	"math/big"
	"reflect"
	"sync"

	"github.com/shopspring/decimal"
)

// Member is a single name/value pair of an Enum.
type Member struct {
	Name  string
	Value any
}

// Enum is an ordered, closed set of named values checked by AssertEnum.
//
// An Enum is mutable through Define until Freeze is called; AssertEnum only
// accepts frozen enums. Safe for concurrent use.
type Enum struct {
	mu      sync.RWMutex
	members []Member
	names   map[string]struct{}
	frozen  bool
}

// BuildEnum returns an unfrozen enum seeded with members. It fails on the
// first member whose name is empty or already defined.
func BuildEnum(members ...Member) (*Enum, error) {
	e := &Enum{names: make(map[string]struct{}, len(members))}

	for _, m := range members {
		if err := e.define(m.Name, m.Value); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// NewEnum is like BuildEnum but panics on an invalid member. Enums are
// declared once at package level, where a bad member is a programming error.
func NewEnum(members ...Member) *Enum {
	e, err := BuildEnum(members...)
	if err != nil {
		panic("guard: invalid enum member: " + err.Error())
	}

	return e
}

// FrozenEnum returns a frozen enum holding members. It panics like NewEnum.
func FrozenEnum(members ...Member) *Enum {
	return NewEnum(members...).Freeze()
}

// Define appends a member. It fails once the enum is frozen, or when name is
// empty or already defined.
func (e *Enum) Define(name string, value any) error {
	if e == nil {
		return &MissingValueError{ParameterName: "enum"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frozen {
		return &TypeMismatchError{Message: "cannot define a member on a frozen enum."}
	}

	return e.define(name, value)
}

func (e *Enum) define(name string, value any) error {
	if name == "" {
		return NewArgumentError("name", "enum member name must not be empty.")
	}

	if _, exists := e.names[name]; exists {
		return NewArgumentError("name", "enum member "+name+" is already defined.")
	}

	e.names[name] = struct{}{}
	e.members = append(e.members, Member{Name: name, Value: value})

	return nil
}

// Freeze closes the enum against further Define calls. It is idempotent.
func (e *Enum) Freeze() *Enum {
	if e == nil {
		return nil
	}

	e.mu.Lock()
	e.frozen = true
	e.mu.Unlock()

	return e
}

// IsFrozen reports whether Freeze has been called.
func (e *Enum) IsFrozen() bool {
	if e == nil {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.frozen
}

// Len returns the number of members.
func (e *Enum) Len() int {
	if e == nil {
		return 0
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.members)
}

// Names returns a copy of the member names in definition order.
func (e *Enum) Names() []string {
	if e == nil {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, len(e.members))
	for i, m := range e.members {
		names[i] = m.Name
	}

	return names
}

// Values returns a copy of the member values in definition order.
func (e *Enum) Values() []any {
	if e == nil {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	values := make([]any, len(e.members))
	for i, m := range e.members {
		values[i] = m.Value
	}

	return values
}

// Contains reports whether v equals a member name or a member value.
// Names are checked first. Numbers compare by value across Go numeric types.
func (e *Enum) Contains(v any) bool {
	if e == nil || v == nil {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if name, ok := stringOf(v); ok {
		if _, exists := e.names[name]; exists {
			return true
		}
	}

	for _, m := range e.members {
		if valuesEqual(v, m.Value) {
			return true
		}
	}

	return false
}

func stringOf(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}

	return rv.String(), true
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if da, ok := numberOf(a); ok {
		db, ok := numberOf(b)
		return ok && da.Equal(db)
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// numberOf converts any Go integer, finite float or decimal.Decimal to an
// exact decimal. NaN and infinities are not numbers for membership purposes.
func numberOf(v any) (decimal.Decimal, bool) {
	if d, ok := v.(decimal.Decimal); ok {
		return d, true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), true
	case reflect.Float32:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}

		return decimal.NewFromFloat32(float32(f)), true
	case reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}

		return decimal.NewFromFloat(f), true
	default:
		return decimal.Decimal{}, false
	}
}
