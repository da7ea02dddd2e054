// Package rules provides ready-made validation functions for financial and
// contact data.
//
// Every rule has the shape of a validator function: it takes plain values and
// returns nil or a *Violation. Rules can be wrapped directly:
//
//	v := validator.MustNew("iban_valid", rules.IBAN, validator.Required("iban"))
//
// or looked up by name in a Catalog, which is how rule-set files refer to
// them:
//
//	def, err := rules.Default().Lookup("min_length")
//	v, err := def.Validator("name_long_enough", map[string]any{"min": 3})
//
// Violations carry a TranslationKey ("validation.<rule>") and values for
// localized messages, and unwrap to one of the package sentinels
// (ErrInvalidFormat, ErrInvalidChecksum, ErrOutOfRange ...).
package rules
