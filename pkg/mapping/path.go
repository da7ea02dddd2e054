package mapping

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/pvframework/pkg/locator"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Path binds every parameter to one dotted member path. Each Provide
// yields at most one invocation.
type Path struct {
	v        *validator.Validator
	paths    map[string]string
	locators map[string]*locator.Locator
}

// NewPath binds parameters to dotted paths such as "customer.address.city".
func NewPath(v *validator.Validator, paths map[string]string, opts ...locator.Option) (*Path, error) {
	if err := checkBindings(v, slices.Collect(maps.Keys(paths))); err != nil {
		return nil, err
	}

	m := &Path{
		v:        v,
		paths:    make(map[string]string, len(paths)),
		locators: make(map[string]*locator.Locator, len(paths)),
	}
	for name, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, &ConfigError{
				Validator: v.Name(),
				Params:    []string{name},
				Err:       fmt.Errorf("%w: empty path", locator.ErrInvalidExpression),
			}
		}
		m.paths[name] = path
		m.locators[name] = locator.New(opts...).Path(path)
	}
	return m, nil
}

func (m *Path) Validator() *validator.Validator { return m.v }

// Provide resolves every path once. A missing required value turns the
// single invocation into a missing-value provision.
func (m *Path) Provide(instance any) ([]Provision, error) {
	params := m.v.Params()
	args := make([]Argument, 0, len(params))
	for _, d := range params {
		l, ok := m.locators[d.Name]
		if !ok {
			args = append(args, fallback(d, LocationUnmapped))
			continue
		}

		match := first(l, instance)
		if match.Missing() {
			if d.Required {
				return []Provision{{Err: match.Err}}, nil
			}
			args = append(args, fallback(d, match.Location))
			continue
		}
		args = append(args, provided(d, match.Value, match.Location))
	}
	return []Provision{{Args: NewArgumentSet(args...)}}, nil
}

func (m *Path) Describe() map[string]string {
	return describe(m.v, func(name string) (string, bool) {
		path, ok := m.paths[name]
		return "." + path, ok
	})
}

func (m *Path) String() string { return render("Path", m.v, m.Describe()) }

// first returns the single match of a path-only locator.
func first(l *locator.Locator, instance any) locator.Match {
	for match := range l.Resolve(instance) {
		return match
	}
	return locator.Match{Err: &locator.MissingValueError{}}
}
