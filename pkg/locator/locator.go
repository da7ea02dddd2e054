package locator

import (
	"iter"
	"strings"
)

// Match is one value produced by resolving a Locator.
type Match struct {
	Value any
	// Location concatenates the labels of every step on the way to Value.
	Location string
	// Err is set when the branch could not be resolved; it wraps ErrMissingValue.
	Err error
}

// Missing reports whether the branch resolved to no value.
func (m Match) Missing() bool {
	return m.Err != nil
}

// IterFunc expands a value into (sub-value, label suffix) pairs.
// It is called again on every resolution, so it must not rely on state from
// a previous call.
type IterFunc func(value any) iter.Seq2[any, string]

// CustomFunc produces matches for a value found at location.
type CustomFunc func(value any, location string) iter.Seq[Match]

type stepKind uint8

const (
	stepPath stepKind = iota
	stepIterate
	stepCustom
)

type step struct {
	kind    stepKind
	name    string
	segs    []string
	iterate IterFunc
	custom  CustomFunc
}

// Locator describes how to get from a root value to zero, one or many values.
// Locators are immutable: every builder method returns a new Locator, so a
// single Locator can be shared by many mappings and goroutines.
type Locator struct {
	steps    []step
	accessor Accessor
}

// Option configures a Locator.
type Option func(*Locator)

// WithAccessor replaces the reflection accessor used by path steps.
func WithAccessor(a Accessor) Option {
	return func(l *Locator) {
		if a != nil {
			l.accessor = a
		}
	}
}

// New returns an empty Locator. Resolving it yields the root itself.
func New(opts ...Option) *Locator {
	l := &Locator{accessor: Reflect}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path appends a step navigating to the named member. Dotted names navigate
// several members at once but keep the name as written in the location.
func (l *Locator) Path(name string) *Locator {
	return l.with(step{kind: stepPath, name: name, segs: strings.Split(name, ".")})
}

// Iterate appends a step expanding the current value with fn.
// Panics if fn is nil.
func (l *Locator) Iterate(fn IterFunc) *Locator {
	if fn == nil {
		panic("locator: Iterate called with nil function")
	}
	return l.with(step{kind: stepIterate, iterate: fn})
}

// Custom appends a step delegating extraction to fn.
// Panics if fn is nil.
func (l *Locator) Custom(fn CustomFunc) *Locator {
	if fn == nil {
		panic("locator: Custom called with nil function")
	}
	return l.with(step{kind: stepCustom, custom: fn})
}

// Multi reports whether the Locator can yield more than one match.
func (l *Locator) Multi() bool {
	for _, s := range l.steps {
		if s.kind != stepPath {
			return true
		}
	}
	return false
}

// Resolve returns the lazy sequence of matches for root. Every call starts
// from scratch; nothing is cached between calls.
func (l *Locator) Resolve(root any) iter.Seq[Match] {
	seq := iter.Seq[Match](func(yield func(Match) bool) {
		yield(Match{Value: root})
	})
	for _, s := range l.steps {
		seq = l.apply(s, seq)
	}
	return seq
}

// String describes the Locator, e.g. ".contracts[...].iban".
func (l *Locator) String() string {
	var b strings.Builder
	for _, s := range l.steps {
		switch s.kind {
		case stepPath:
			b.WriteByte('.')
			b.WriteString(s.name)
		case stepIterate:
			b.WriteString("[...]")
		case stepCustom:
			b.WriteString("{...}")
		}
	}
	return b.String()
}

func (l *Locator) with(s step) *Locator {
	steps := make([]step, len(l.steps), len(l.steps)+1)
	copy(steps, l.steps)
	return &Locator{steps: append(steps, s), accessor: l.accessor}
}

func (l *Locator) apply(s step, parent iter.Seq[Match]) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for m := range parent {
			if m.Missing() {
				if !yield(m) {
					return
				}
				continue
			}
			switch s.kind {
			case stepPath:
				if !yield(l.member(m, s)) {
					return
				}
			case stepIterate:
				for v, label := range s.iterate(m.Value) {
					if !yield(Match{Value: v, Location: m.Location + label}) {
						return
					}
				}
			case stepCustom:
				for child := range s.custom(m.Value, m.Location) {
					if !yield(child) {
						return
					}
				}
			}
		}
	}
}

func (l *Locator) member(m Match, s step) Match {
	location := joinLabel(m.Location, s.name)
	current := m.Value
	for _, seg := range s.segs {
		v, ok := l.accessor.Member(current, seg)
		if !ok {
			return Match{Location: location, Err: &MissingValueError{Location: location, Member: seg}}
		}
		current = v
	}
	return Match{Value: current, Location: location}
}

func joinLabel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
