package validator

import (
	"fmt"
	"reflect"
)

// Param declares one parameter of a validator function, in positional order.
type Param struct {
	name     string
	required bool
	def      any
}

// Required declares a parameter that must be provided by a mapping.
func Required(name string) Param {
	return Param{name: name, required: true}
}

// Optional declares a parameter that falls back to def when no value is provided.
func Optional(name string, def any) Param {
	return Param{name: name, def: def}
}

// Descriptor is the resolved information about a single parameter.
type Descriptor struct {
	Name     string
	Type     reflect.Type
	Required bool
	Default  any
	Position int
}

func (d Descriptor) String() string {
	if d.Required {
		return fmt.Sprintf("%s %s", d.Name, d.Type)
	}
	return fmt.Sprintf("%s %s = %#v", d.Name, d.Type, d.Default)
}
