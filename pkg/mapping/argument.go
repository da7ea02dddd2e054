package mapping

import (
	"fmt"
	"strings"
)

const (
	// LocationDirect is the location of literal values bound with NewDirect.
	LocationDirect = "<direct>"

	// LocationUnmapped is the location of optional parameters without a binding.
	LocationUnmapped = "unmapped"
)

// Argument is one resolved parameter value.
type Argument struct {
	Name     string
	Value    any
	Location string
	// Provided is false when Value is the parameter default.
	Provided bool
	Required bool
}

// ArgumentSet holds the arguments of one invocation in parameter order.
type ArgumentSet struct {
	args []Argument
}

// NewArgumentSet builds a set from arguments given in parameter order.
func NewArgumentSet(args ...Argument) *ArgumentSet {
	return &ArgumentSet{args: args}
}

// Get returns the argument bound to name.
func (s *ArgumentSet) Get(name string) (Argument, bool) {
	for _, a := range s.args {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// All returns the arguments in parameter order.
func (s *ArgumentSet) All() []Argument {
	out := make([]Argument, len(s.args))
	copy(out, s.args)
	return out
}

func (s *ArgumentSet) Len() int { return len(s.args) }

// Values returns the argument values keyed by parameter name.
func (s *ArgumentSet) Values() map[string]any {
	values := make(map[string]any, len(s.args))
	for _, a := range s.args {
		values[a.Name] = a.Value
	}
	return values
}

// Provided returns the arguments that were resolved from the instance or given directly.
func (s *ArgumentSet) Provided() []Argument {
	var out []Argument
	for _, a := range s.args {
		if a.Provided {
			out = append(out, a)
		}
	}
	return out
}

// Location joins the locations of the provided arguments with ", ".
func (s *ArgumentSet) Location() string {
	var parts []string
	for _, a := range s.args {
		if a.Provided && a.Location != "" {
			parts = append(parts, a.Location)
		}
	}
	return strings.Join(parts, ", ")
}

// Format renders one line per argument between braces, every line prefixed with indent.
func (s *ArgumentSet) Format(indent string) string {
	var b strings.Builder
	b.WriteString(indent + "{")
	for _, a := range s.args {
		required, provided := "optional", "unprovided"
		if a.Required {
			required = "required"
		}
		if a.Provided {
			provided = "provided"
		}
		fmt.Fprintf(&b, "\n%s\t%s: value=%s, location=%s, %s, %s", indent, a.Name, formatValue(a.Value), a.Location, required, provided)
	}
	b.WriteString("\n" + indent + "}")
	return b.String()
}

func (s *ArgumentSet) String() string { return s.Format("") }

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
