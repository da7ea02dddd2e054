package ruleset

import "errors"

var (
	// ErrInvalidRuleset is returned for rule-set files that cannot be compiled.
	ErrInvalidRuleset = errors.New("invalid rule set")

	// ErrUnknownMapping is returned for an unsupported mapping kind.
	ErrUnknownMapping = errors.New("unknown mapping kind")

	// ErrDuplicateRuleset is returned when two rule sets share a name.
	ErrDuplicateRuleset = errors.New("duplicate rule set")

	// ErrRulesetNotFound is returned by Registry lookups for unknown names.
	ErrRulesetNotFound = errors.New("rule set not found")
)
