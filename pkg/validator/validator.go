package validator

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Validator wraps a validation function together with its parameter descriptors.
// A Validator is immutable and safe for concurrent use.
type Validator struct {
	name       string
	fn         reflect.Value
	params     []Descriptor
	index      map[string]int
	withCtx    bool
	returnsErr bool
}

// New wraps fn as a validator.
//
// fn must be a non-variadic function. An optional leading context.Context
// parameter makes it context-aware; it receives the context of the
// validation run. fn returns nothing or a single error. Every other
// parameter needs exactly one Param, in positional order.
//
// An empty name is replaced by the function's own name.
func New(name string, fn any, params ...Param) (*Validator, error) {
	if fn == nil {
		return nil, &SignatureError{Validator: name, Reason: "function is nil"}
	}

	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, &SignatureError{Validator: name, Reason: fmt.Sprintf("%T is not a function", fn)}
	}
	if rv.IsNil() {
		return nil, &SignatureError{Validator: name, Reason: "function is nil"}
	}
	if name == "" {
		name = funcName(rv)
	}

	typ := rv.Type()
	if typ.IsVariadic() {
		return nil, &SignatureError{Validator: name, Reason: "variadic functions are not supported"}
	}

	v := &Validator{
		name:  name,
		fn:    rv,
		index: make(map[string]int, len(params)),
	}

	switch {
	case typ.NumOut() == 0:
	case typ.NumOut() == 1 && typ.Out(0) == errorType:
		v.returnsErr = true
	default:
		return nil, &SignatureError{Validator: name, Reason: "function must return nothing or a single error"}
	}

	offset := 0
	if typ.NumIn() > 0 && typ.In(0) == contextType {
		v.withCtx = true
		offset = 1
	}

	declared := typ.NumIn() - offset
	if len(params) < declared {
		return nil, &SignatureError{
			Validator: name,
			Reason:    fmt.Sprintf("parameter #%d (%s) has no declared parameter info", len(params)+1, typ.In(offset+len(params))),
		}
	}
	if len(params) > declared {
		return nil, &SignatureError{
			Validator: name,
			Reason:    fmt.Sprintf("%d parameters declared, function accepts %d", len(params), declared),
		}
	}

	v.params = make([]Descriptor, 0, declared)
	for i, p := range params {
		if p.name == "" {
			return nil, &SignatureError{Validator: name, Reason: fmt.Sprintf("parameter #%d has an empty name", i+1)}
		}
		if _, dup := v.index[p.name]; dup {
			return nil, &SignatureError{Validator: name, Reason: fmt.Sprintf("duplicate parameter %q", p.name)}
		}

		t := typ.In(offset + i)
		if !p.required {
			if err := checkConvertible(p.def, t); err != nil {
				return nil, &SignatureError{
					Validator: name,
					Reason:    fmt.Sprintf("default of parameter %q: %v", p.name, err),
				}
			}
		}

		v.index[p.name] = i
		v.params = append(v.params, Descriptor{
			Name:     p.name,
			Type:     t,
			Required: p.required,
			Default:  p.def,
			Position: i,
		})
	}

	return v, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, fn any, params ...Param) *Validator {
	v, err := New(name, fn, params...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) Name() string { return v.name }

// ContextAware reports whether the function takes a leading context.Context.
func (v *Validator) ContextAware() bool { return v.withCtx }

// Params returns the parameter descriptors in positional order.
func (v *Validator) Params() []Descriptor {
	out := make([]Descriptor, len(v.params))
	copy(out, v.params)
	return out
}

// ParamNames returns all parameter names in positional order.
func (v *Validator) ParamNames() []string {
	names := make([]string, len(v.params))
	for i, d := range v.params {
		names[i] = d.Name
	}
	return names
}

// RequiredNames returns the names of parameters without a default, in positional order.
func (v *Validator) RequiredNames() []string {
	var names []string
	for _, d := range v.params {
		if d.Required {
			names = append(names, d.Name)
		}
	}
	return names
}

// OptionalDefaults maps every optional parameter to its default value.
func (v *Validator) OptionalDefaults() map[string]any {
	defaults := make(map[string]any)
	for _, d := range v.params {
		if !d.Required {
			defaults[d.Name] = d.Default
		}
	}
	return defaults
}

// DeclaredType returns the type of the named parameter.
func (v *Validator) DeclaredType(name string) (reflect.Type, bool) {
	d, ok := v.Param(name)
	return d.Type, ok
}

// Param returns the descriptor of the named parameter.
func (v *Validator) Param(name string) (Descriptor, bool) {
	i, ok := v.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return v.params[i], true
}

func (v *Validator) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

func (v *Validator) IsRequired(name string) bool {
	d, ok := v.Param(name)
	return ok && d.Required
}

// String renders the validator like a function signature, e.g. "is_numeric(value string)".
func (v *Validator) String() string {
	parts := make([]string, len(v.params))
	for i, d := range v.params {
		parts[i] = d.String()
	}
	return v.name + "(" + strings.Join(parts, ", ") + ")"
}

// Invoke calls the function with the named arguments.
//
// Missing optional arguments take their default, missing required ones
// the zero value of their type. Values of a convertible kind are converted
// to the declared type. Invoke never panics: a panic inside the function
// is returned as *PanicError and an unusable argument as *ArgumentError.
func (v *Validator) Invoke(ctx context.Context, args map[string]any) (err error) {
	in := make([]reflect.Value, 0, len(v.params)+1)
	if v.withCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(&ctx).Elem())
	}

	for _, d := range v.params {
		value, ok := args[d.Name]
		if !ok && !d.Required {
			value, ok = d.Default, true
		}
		rv, aerr := argValue(d, value, ok)
		if aerr != nil {
			return aerr
		}
		in = append(in, rv)
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Validator: v.name, Value: r, Stack: debug.Stack()}
		}
	}()

	out := v.fn.Call(in)
	if v.returnsErr && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

func argValue(d Descriptor, value any, ok bool) (reflect.Value, error) {
	if !ok {
		return reflect.Zero(d.Type), nil
	}
	if value == nil {
		if nilable(d.Type) {
			return reflect.Zero(d.Type), nil
		}
		return reflect.Value{}, &ArgumentError{Param: d.Name, Expected: d.Type, Value: value}
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(d.Type) {
		return rv, nil
	}
	if convertible(rv.Type(), d.Type) {
		return rv.Convert(d.Type), nil
	}
	return reflect.Value{}, &ArgumentError{Param: d.Name, Expected: d.Type, Value: value}
}

func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return "validator"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
