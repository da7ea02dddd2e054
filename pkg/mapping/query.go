package mapping

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/pvframework/pkg/locator"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

type queries struct {
	v        *validator.Validator
	locators map[string]*locator.Locator
}

func newQueries(v *validator.Validator, locators map[string]*locator.Locator) (queries, error) {
	if err := checkBindings(v, slices.Collect(maps.Keys(locators))); err != nil {
		return queries{}, err
	}
	for name, l := range locators {
		if l == nil {
			return queries{}, &ConfigError{Validator: v.Name(), Params: []string{name}, Err: ErrNilLocator}
		}
	}
	return queries{v: v, locators: maps.Clone(locators)}, nil
}

func (q queries) Validator() *validator.Validator { return q.v }

// resolve materializes the matches of every mapped parameter.
func (q queries) resolve(instance any) map[string][]locator.Match {
	out := make(map[string][]locator.Match, len(q.locators))
	for name, l := range q.locators {
		out[name] = slices.Collect(l.Resolve(instance))
	}
	return out
}

func (q queries) Describe() map[string]string {
	return describe(q.v, func(name string) (string, bool) {
		l, ok := q.locators[name]
		if !ok {
			return "", false
		}
		return l.String(), true
	})
}

// Query binds parameters to locators and invokes the validator once for
// every combination of their values.
type Query struct {
	queries
}

// NewQuery binds every name in locators to its locator.
func NewQuery(v *validator.Validator, locators map[string]*locator.Locator) (*Query, error) {
	q, err := newQueries(v, locators)
	if err != nil {
		return nil, err
	}
	return &Query{queries: q}, nil
}

// Provide returns the cross product of the resolved values, parameters
// ordered as declared and the last parameter varying fastest.
//
// Absent values of a required parameter are left out of the product and
// returned afterwards as one missing-value provision each. Absent values
// of an optional parameter take part in the product with the default.
func (m *Query) Provide(instance any) ([]Provision, error) {
	matches := m.resolve(instance)
	params := m.v.Params()

	columns := make([][]Argument, 0, len(params))
	var missing []Provision
	for _, d := range params {
		ms, ok := matches[d.Name]
		if !ok {
			columns = append(columns, []Argument{fallback(d, LocationUnmapped)})
			continue
		}

		column := make([]Argument, 0, len(ms))
		for _, match := range ms {
			switch {
			case !match.Missing():
				column = append(column, provided(d, match.Value, match.Location))
			case d.Required:
				missing = append(missing, Provision{Err: match.Err})
			default:
				column = append(column, fallback(d, match.Location))
			}
		}
		columns = append(columns, column)
	}

	rows := product(columns)
	out := make([]Provision, 0, len(rows)+len(missing))
	for _, row := range rows {
		out = append(out, Provision{Args: NewArgumentSet(row...)})
	}
	return append(out, missing...), nil
}

func (m *Query) String() string { return render("Query", m.v, m.Describe()) }

func product(columns [][]Argument) [][]Argument {
	rows := [][]Argument{{}}
	for _, column := range columns {
		next := make([][]Argument, 0, len(rows)*len(column))
		for _, row := range rows {
			for _, a := range column {
				next = append(next, append(slices.Clip(row), a))
			}
		}
		rows = next
	}
	return rows
}
