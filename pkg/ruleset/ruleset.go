package ruleset

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/locator"
	"github.com/dmitrymomot/pvframework/pkg/mapping"
	"github.com/dmitrymomot/pvframework/pkg/rules"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Entry is one compiled rule: the mapping and its registration options.
type Entry struct {
	Rule    Rule
	Mapping mapping.Mapping
	Options []pvframework.RegisterOption
}

// Ruleset is a compiled rule-set file.
type Ruleset struct {
	file    File
	entries []Entry
}

// Compile resolves every rule of f against catalog and builds its mapping.
func Compile(f File, catalog *rules.Catalog) (*Ruleset, error) {
	if catalog == nil {
		catalog = rules.Default()
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("%w: %s: no rules", ErrInvalidRuleset, f.Name)
	}

	rs := &Ruleset{file: f, entries: make([]Entry, 0, len(f.Rules))}
	for i, r := range f.Rules {
		e, err := compileRule(r, catalog)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: rule #%d (%s): %w", ErrInvalidRuleset, f.Name, i+1, r.ValidatorName(), err)
		}
		rs.entries = append(rs.entries, e)
	}
	return rs, nil
}

func compileRule(r Rule, catalog *rules.Catalog) (Entry, error) {
	def, err := catalog.Lookup(r.Rule)
	if err != nil {
		return Entry{}, err
	}

	opts, err := registerOptions(r)
	if err != nil {
		return Entry{}, err
	}

	kind := r.MappingKind()
	if kind == MappingDirect {
		if len(r.Params) > 0 {
			return Entry{}, fmt.Errorf("direct mapping takes consts, not params")
		}
		v, err := def.Validator(r.ValidatorName(), nil)
		if err != nil {
			return Entry{}, err
		}
		m, err := mapping.NewDirect(v, r.Consts)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Rule: r, Mapping: m, Options: opts}, nil
	}

	v, err := def.Validator(r.ValidatorName(), r.Consts)
	if err != nil {
		return Entry{}, err
	}
	m, err := buildMapping(kind, v, r.Params)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Rule: r, Mapping: m, Options: opts}, nil
}

func buildMapping(kind string, v *validator.Validator, params map[string]string) (mapping.Mapping, error) {
	switch kind {
	case MappingPath:
		return mapping.NewPath(v, params)
	case MappingQuery, MappingParallel:
		locators := make(map[string]*locator.Locator, len(params))
		for _, name := range slices.Sorted(maps.Keys(params)) {
			l, err := locator.Compile(params[name])
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", name, err)
			}
			locators[name] = l
		}
		if kind == MappingParallel {
			return mapping.NewParallelQuery(v, locators)
		}
		return mapping.NewQuery(v, locators)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMapping, kind)
	}
}

func registerOptions(r Rule) ([]pvframework.RegisterOption, error) {
	var opts []pvframework.RegisterOption
	if r.Mode != "" {
		mode, err := pvframework.ParseMode(r.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pvframework.WithMode(mode))
	}
	if r.ErrorID != 0 {
		opts = append(opts, pvframework.WithErrorID(r.ErrorID))
	}
	if r.Timeout != "" {
		d, err := time.ParseDuration(r.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("timeout must be positive, got %s", r.Timeout)
		}
		opts = append(opts, pvframework.WithTimeout(d))
	}
	return opts, nil
}

// Name returns the rule-set name.
func (rs *Ruleset) Name() string { return rs.file.Name }

// Description returns the rule-set description.
func (rs *Ruleset) Description() string { return rs.file.Description }

// File returns the source definition.
func (rs *Ruleset) File() File { return rs.file }

// Entries returns the compiled rules in file order.
func (rs *Ruleset) Entries() []Entry { return slices.Clone(rs.entries) }

// Register adds every compiled rule to m, stopping at the first error.
func (rs *Ruleset) Register(m *pvframework.Manager) error {
	for _, e := range rs.entries {
		if err := m.Register(e.Mapping, e.Options...); err != nil {
			return fmt.Errorf("register %s in %s: %w", e.Rule.ValidatorName(), rs.file.Name, err)
		}
	}
	return nil
}
