package mapping

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Direct binds parameters to literal values.
type Direct struct {
	v      *validator.Validator
	values map[string]any
}

// NewDirect binds every name in values to its literal value.
func NewDirect(v *validator.Validator, values map[string]any) (*Direct, error) {
	if err := checkBindings(v, slices.Collect(maps.Keys(values))); err != nil {
		return nil, err
	}
	return &Direct{v: v, values: maps.Clone(values)}, nil
}

func (m *Direct) Validator() *validator.Validator { return m.v }

// Provide returns exactly one argument set; instance is ignored.
func (m *Direct) Provide(any) ([]Provision, error) {
	params := m.v.Params()
	args := make([]Argument, 0, len(params))
	for _, d := range params {
		if value, ok := m.values[d.Name]; ok {
			args = append(args, provided(d, value, LocationDirect))
			continue
		}
		args = append(args, fallback(d, LocationUnmapped))
	}
	return []Provision{{Args: NewArgumentSet(args...)}}, nil
}

func (m *Direct) Describe() map[string]string {
	return describe(m.v, func(name string) (string, bool) {
		_, ok := m.values[name]
		return LocationDirect, ok
	})
}

func (m *Direct) String() string { return render("Direct", m.v, m.Describe()) }
