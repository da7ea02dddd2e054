package mapping

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/pvframework/pkg/locator"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Mapping binds the parameters of one validator to values of an instance.
// Implementations are immutable and safe for concurrent use.
type Mapping interface {
	// Validator returns the bound validator.
	Validator() *validator.Validator
	// Provide resolves the argument sets of every invocation for instance.
	// A returned error aborts validation of the whole instance.
	Provide(instance any) ([]Provision, error)
	// Describe tells, per parameter, where its value comes from.
	Describe() map[string]string
	String() string
}

// Provision is one planned invocation. Err is set when a required
// parameter resolved to no value; Args is nil in that case.
type Provision struct {
	Args *ArgumentSet
	Err  error
}

// Missing reports whether the invocation cannot be made because a required value is absent.
func (p Provision) Missing() bool { return p.Err != nil }

// Location returns the combined location of the provided arguments, or the
// location of the missing value.
func (p Provision) Location() string {
	if mv, ok := p.Err.(*locator.MissingValueError); ok {
		return mv.Location
	}
	if p.Args == nil {
		return ""
	}
	return p.Args.Location()
}

// checkBindings verifies names against the parameters declared by v.
func checkBindings(v *validator.Validator, names []string) error {
	var unknown []string
	for _, name := range names {
		if !v.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return &ConfigError{Validator: v.Name(), Params: unknown, Err: ErrUnknownParameter}
	}

	var unmapped []string
	for _, name := range v.RequiredNames() {
		if !slices.Contains(names, name) {
			unmapped = append(unmapped, name)
		}
	}
	if len(unmapped) > 0 {
		return &ConfigError{Validator: v.Name(), Params: unmapped, Err: ErrUnmappedParameter}
	}
	return nil
}

func provided(d validator.Descriptor, value any, location string) Argument {
	return Argument{Name: d.Name, Value: value, Location: location, Provided: true, Required: d.Required}
}

func fallback(d validator.Descriptor, location string) Argument {
	return Argument{Name: d.Name, Value: d.Default, Location: location, Required: d.Required}
}

func describe(v *validator.Validator, source func(name string) (string, bool)) map[string]string {
	out := make(map[string]string, len(v.ParamNames()))
	for _, name := range v.ParamNames() {
		if s, ok := source(name); ok {
			out[name] = s
			continue
		}
		out[name] = LocationUnmapped
	}
	return out
}

func render(kind string, v *validator.Validator, described map[string]string) string {
	parts := make([]string, 0, len(described))
	for _, name := range v.ParamNames() {
		parts = append(parts, name+": "+described[name])
	}
	return fmt.Sprintf("%s(%s, {%s})", kind, v.Name(), strings.Join(parts, ", "))
}
