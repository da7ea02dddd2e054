package ruleset

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/rules"
)

// Set pairs a compiled rule set with the manager that validates against it.
type Set struct {
	Ruleset *Ruleset
	Manager *pvframework.Manager
}

// Registry holds named rule sets, each with its own Manager.
// It is safe for concurrent use.
type Registry struct {
	catalog *rules.Catalog
	opts    []pvframework.Option

	mu   sync.RWMutex
	sets map[string]*Set
}

// NewRegistry creates an empty registry. Managers are created with opts.
func NewRegistry(catalog *rules.Catalog, opts ...pvframework.Option) *Registry {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &Registry{catalog: catalog, opts: opts, sets: make(map[string]*Set)}
}

// Catalog returns the rule catalog used to compile rule sets.
func (r *Registry) Catalog() *rules.Catalog { return r.catalog }

// Add compiles f and registers it under f.Name.
func (r *Registry) Add(f File) (*Set, error) {
	return r.put(f, false)
}

// Replace compiles f and registers it under f.Name, replacing any rule set
// of that name. Runs already in progress keep the previous manager.
func (r *Registry) Replace(f File) (*Set, error) {
	return r.put(f, true)
}

func (r *Registry) build(f File) (*Set, error) {
	rs, err := Compile(f, r.catalog)
	if err != nil {
		return nil, err
	}
	m := pvframework.NewManager(r.opts...)
	if err := rs.Register(m); err != nil {
		return nil, err
	}
	return &Set{Ruleset: rs, Manager: m}, nil
}

func (r *Registry) put(f File, replace bool) (*Set, error) {
	set, err := r.build(f)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sets[f.Name]; exists && !replace {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRuleset, f.Name)
	}
	r.sets[f.Name] = set
	return set, nil
}

// LoadDir adds every rule-set file found in dir.
func (r *Registry) LoadDir(dir string) error {
	files, err := LoadDir(dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := r.Add(f); err != nil {
			return err
		}
	}
	return nil
}

// Reload replaces every registered rule set with the files found in dir.
// All files are compiled before the swap; on any error the registry is left
// unchanged.
func (r *Registry) Reload(dir string) error {
	files, err := LoadDir(dir)
	if err != nil {
		return err
	}
	sets := make(map[string]*Set, len(files))
	for _, f := range files {
		if _, exists := sets[f.Name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateRuleset, f.Name)
		}
		set, err := r.build(f)
		if err != nil {
			return err
		}
		sets[f.Name] = set
	}

	r.mu.Lock()
	r.sets = sets
	r.mu.Unlock()
	return nil
}

// Get returns the rule set registered under name.
func (r *Registry) Get(name string) (*Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRulesetNotFound, name)
	}
	return set, nil
}

// Remove drops the rule set registered under name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[name]; !ok {
		return fmt.Errorf("%w: %s", ErrRulesetNotFound, name)
	}
	delete(r.sets, name)
	return nil
}

// Names returns the registered rule-set names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.sets))
}

// Len returns the number of registered rule sets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}
