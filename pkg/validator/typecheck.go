package validator

import (
	"fmt"
	"reflect"
)

// TypeChecker decides whether a value conforms to a declared parameter type.
// Implementations return an error wrapping ErrTypeMismatch on failure.
type TypeChecker interface {
	Check(value any, expected reflect.Type) error
}

// TypeCheckerFunc adapts a function to the TypeChecker interface.
type TypeCheckerFunc func(value any, expected reflect.Type) error

func (f TypeCheckerFunc) Check(value any, expected reflect.Type) error {
	return f(value, expected)
}

var (
	// Assignable accepts values assignable to the declared type and nil for nilable types.
	Assignable TypeChecker = TypeCheckerFunc(checkAssignable)

	// Convertible additionally accepts numeric conversions and values of the same kind.
	Convertible TypeChecker = TypeCheckerFunc(checkConvertible)
)

func checkAssignable(value any, expected reflect.Type) error {
	if expected == nil {
		return nil
	}
	if value == nil {
		if nilable(expected) {
			return nil
		}
		return mismatch(value, expected)
	}
	if reflect.TypeOf(value).AssignableTo(expected) {
		return nil
	}
	return mismatch(value, expected)
}

func checkConvertible(value any, expected reflect.Type) error {
	if checkAssignable(value, expected) == nil {
		return nil
	}
	if value != nil && convertible(reflect.TypeOf(value), expected) {
		return nil
	}
	return mismatch(value, expected)
}

func mismatch(value any, expected reflect.Type) error {
	return fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, expected, value)
}

// convertible excludes the int-to-string and string-to-slice conversions
// that reflect allows but that never make sense for argument values.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	if numeric(from.Kind()) && numeric(to.Kind()) {
		return true
	}
	return from.Kind() == to.Kind()
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
