package mapping

import (
	"github.com/dmitrymomot/pvframework/pkg/locator"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// ParallelQuery binds parameters to locators and pairs their values
// positionally, like zip. Sequences of length one are broadcast.
type ParallelQuery struct {
	queries
}

// NewParallelQuery binds every name in locators to its locator.
func NewParallelQuery(v *validator.Validator, locators map[string]*locator.Locator) (*ParallelQuery, error) {
	q, err := newQueries(v, locators)
	if err != nil {
		return nil, err
	}
	return &ParallelQuery{queries: q}, nil
}

// Provide zips the resolved sequences. Every sequence longer than one
// must have the same length, otherwise a *LengthMismatchError is returned.
// An empty sequence zips to no invocations at all.
//
// A position where a required parameter is absent becomes a missing-value
// provision; an absent optional parameter takes its default.
func (m *ParallelQuery) Provide(instance any) ([]Provision, error) {
	matches := m.resolve(instance)
	n, err := m.zipLength(matches)
	if err != nil {
		return nil, err
	}

	params := m.v.Params()
	out := make([]Provision, 0, n)
	for i := range n {
		args := make([]Argument, 0, len(params))
		var missing error
		for _, d := range params {
			ms, ok := matches[d.Name]
			if !ok {
				args = append(args, fallback(d, LocationUnmapped))
				continue
			}

			match := ms[0]
			if len(ms) > 1 {
				match = ms[i]
			}
			switch {
			case !match.Missing():
				args = append(args, provided(d, match.Value, match.Location))
			case d.Required:
				missing = match.Err
			default:
				args = append(args, fallback(d, match.Location))
			}
			if missing != nil {
				break
			}
		}

		if missing != nil {
			out = append(out, Provision{Err: missing})
			continue
		}
		out = append(out, Provision{Args: NewArgumentSet(args...)})
	}
	return out, nil
}

func (m *ParallelQuery) String() string { return render("ParallelQuery", m.v, m.Describe()) }

func (m *ParallelQuery) zipLength(matches map[string][]locator.Match) (int, error) {
	n := -1
	for _, ms := range matches {
		switch l := len(ms); {
		case l == 1:
		case n == -1:
			n = l
		case l != n:
			lengths := make(map[string]int, len(matches))
			for name, ms := range matches {
				lengths[name] = len(ms)
			}
			return 0, &LengthMismatchError{Validator: m.v.Name(), Lengths: lengths}
		}
	}
	if n == -1 {
		return 1, nil
	}
	return n, nil
}
