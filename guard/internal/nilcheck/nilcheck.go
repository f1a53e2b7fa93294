package nilcheck

import "reflect"

// Interface reports whether value is nil, including typed-nil interfaces.
func Interface(value any) bool {
	if value == nil {
		return true
	}

	return isNilValue(reflect.ValueOf(value))
}

// Unbox follows non-nil pointers until it reaches a non-pointer value.
// ok is false when a nil pointer is reached on the way down, or when the
// value it lands on is itself nil (slice, map, chan or func).
func Unbox(value any) (v reflect.Value, ok bool) {
	if value == nil {
		return reflect.Value{}, false
	}

	v = reflect.ValueOf(value)

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}

		v = v.Elem()
	}

	return v, !isNilValue(v)
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
