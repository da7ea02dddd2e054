package locator

import (
	"fmt"
	"reflect"
)

// Field resolves a dotted path against obj.
// A member that does not exist returns a *MissingValueError.
func Field(obj any, path string, opts ...Option) (any, error) {
	for m := range New(opts...).Path(path).Resolve(obj) {
		return m.Value, m.Err
	}
	return nil, &MissingValueError{Location: path, Member: path}
}

// RequiredField resolves path and asserts the result to T.
// A nil value is accepted for pointer, interface, map, slice, chan and func types.
func RequiredField[T any](obj any, path string, opts ...Option) (T, error) {
	var zero T
	v, err := Field(obj, path, opts...)
	if err != nil {
		return zero, err
	}
	if v == nil && nilable(reflect.TypeFor[T]()) {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s: %w: expected %s, got %T", path, ErrTypeMismatch, reflect.TypeFor[T](), v)
	}
	return typed, nil
}

// OptionalField is RequiredField without the error: it reports false when the
// member is absent or has another type.
func OptionalField[T any](obj any, path string, opts ...Option) (T, bool) {
	v, err := RequiredField[T](obj, path, opts...)
	return v, err == nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
