package rules

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Definition describes a rule function and the parameters it declares.
type Definition struct {
	Name        string
	Description string
	Func        any
	Params      []validator.Param
}

// Validator wraps the rule under the given validator name. Entries in consts
// bind fixed values to parameters: a bound parameter becomes optional with
// that value as its default, so mappings only need to supply the rest.
func (d Definition) Validator(name string, consts map[string]any) (*validator.Validator, error) {
	if name == "" {
		name = d.Name
	}
	v, err := validator.New(name, d.Func, d.Params...)
	if err != nil || len(consts) == 0 {
		return v, err
	}

	params := make([]validator.Param, 0, len(d.Params))
	for _, p := range v.Params() {
		value, bound := consts[p.Name]
		switch {
		case bound:
			coerced, err := coerce(value, p.Type)
			if err != nil {
				return nil, fmt.Errorf("rule %s: parameter %q: %w", d.Name, p.Name, err)
			}
			params = append(params, validator.Optional(p.Name, coerced))
		case p.Required:
			params = append(params, validator.Required(p.Name))
		default:
			params = append(params, validator.Optional(p.Name, p.Default))
		}
	}
	for key := range consts {
		if !v.Has(key) {
			return nil, fmt.Errorf("rule %s: %w: %q", d.Name, ErrUnknownParameter, key)
		}
	}
	return validator.New(name, d.Func, params...)
}

// Catalog is a concurrency-safe registry of rule definitions by name.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]Definition)}
}

// Default returns a new catalog holding every rule of this package.
func Default() *Catalog {
	c := NewCatalog()
	for _, d := range builtin() {
		if err := c.Register(d); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds d. The definition is checked by building a validator from it.
func (c *Catalog) Register(d Definition) error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty rule name", validator.ErrInvalidSignature)
	}
	if _, err := validator.New(d.Name, d.Func, d.Params...); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.defs[d.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, d.Name)
	}
	c.defs[d.Name] = d
	return nil
}

// Lookup returns the definition registered under name.
func (c *Catalog) Lookup(name string) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return d, nil
}

// Names returns the registered rule names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.defs))
}

// Definitions returns the registered definitions sorted by name.
func (c *Catalog) Definitions() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Definition, 0, len(c.defs))
	for _, name := range slices.Sorted(maps.Keys(c.defs)) {
		out = append(out, c.defs[name])
	}
	return out
}

func builtin() []Definition {
	return []Definition{
		{Name: "non_empty", Description: "value is not blank", Func: NonEmpty, Params: []validator.Param{validator.Required("value")}},
		{Name: "numeric", Description: "value contains only digits", Func: Numeric, Params: []validator.Param{validator.Required("value")}},
		{Name: "alphanumeric", Description: "value contains only letters and digits", Func: Alphanumeric, Params: []validator.Param{validator.Required("value")}},
		{
			Name: "min_length", Description: "value has at least min characters", Func: MinLength,
			Params: []validator.Param{validator.Required("value"), validator.Optional("min", 1)},
		},
		{
			Name: "max_length", Description: "value has at most max characters", Func: MaxLength,
			Params: []validator.Param{validator.Required("value"), validator.Optional("max", 255)},
		},
		{
			Name: "pattern", Description: "value matches a regular expression", Func: MatchesPattern,
			Params: []validator.Param{validator.Required("value"), validator.Required("pattern")},
		},
		{Name: "positive", Description: "amount is greater than zero", Func: Positive, Params: []validator.Param{validator.Required("amount")}},
		{Name: "non_negative", Description: "amount is not negative", Func: NonNegative, Params: []validator.Param{validator.Required("amount")}},
		{
			Name: "in_range", Description: "min <= value <= max", Func: InRange,
			Params: []validator.Param{validator.Required("value"), validator.Required("min"), validator.Required("max")},
		},
		{
			Name: "decimal_precision", Description: "value has at most decimals fractional digits", Func: DecimalPrecision,
			Params: []validator.Param{validator.Required("value"), validator.Optional("decimals", 2)},
		},
		{Name: "percentage", Description: "value is between 0 and 100", Func: Percentage, Params: []validator.Param{validator.Required("value")}},
		{Name: "iban", Description: "valid IBAN with mod-97 check digits", Func: IBAN, Params: []validator.Param{validator.Required("iban")}},
		{Name: "sepa_iban", Description: "valid IBAN issued in a SEPA country", Func: SEPAIBAN, Params: []validator.Param{validator.Required("iban")}},
		{Name: "luhn", Description: "number passes the Luhn checksum", Func: Luhn, Params: []validator.Param{validator.Required("number")}},
		{Name: "currency_code", Description: "ISO 4217 currency code", Func: CurrencyCode, Params: []validator.Param{validator.Required("code")}},
		{Name: "routing_number", Description: "US ABA routing number", Func: RoutingNumber, Params: []validator.Param{validator.Required("number")}},
		{Name: "email", Description: "email address", Func: Email, Params: []validator.Param{validator.Required("address")}},
		{
			Name: "url", Description: "absolute URL with an allowed scheme", Func: URL,
			Params: []validator.Param{validator.Required("url"), validator.Optional("schemes", []string(nil))},
		},
		{Name: "ip_address", Description: "IPv4 or IPv6 address", Func: IPAddress, Params: []validator.Param{validator.Required("address")}},
		{Name: "uuid", Description: "canonical UUID", Func: UUID, Params: []validator.Param{validator.Required("id")}},
		{
			Name: "date", Description: "date in the given layout", Func: Date,
			Params: []validator.Param{validator.Required("value"), validator.Optional("layout", "2006-01-02")},
		},
		{
			Name: "past_date", Description: "date in the past", Func: PastDate,
			Params: []validator.Param{validator.Required("value"), validator.Optional("layout", "2006-01-02")},
		},
		{
			Name: "one_of", Description: "value is one of options", Func: OneOf,
			Params: []validator.Param{validator.Required("value"), validator.Optional("options", []string(nil))},
		},
		{
			Name: "none_of", Description: "value is none of forbidden", Func: NoneOf,
			Params: []validator.Param{validator.Required("value"), validator.Optional("forbidden", []string(nil))},
		},
	}
}

// coerce converts decoded configuration values, such as YAML numbers and
// lists, to the declared parameter type.
func coerce(value any, t reflect.Type) (any, error) {
	if value == nil {
		return reflect.Zero(t).Interface(), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		return value, nil
	}
	if t.Kind() == reflect.Slice && rv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		for i := range rv.Len() {
			elem, err := coerce(rv.Index(i).Interface(), t.Elem())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if elem != nil {
				out.Index(i).Set(reflect.ValueOf(elem))
			}
		}
		return out.Interface(), nil
	}
	if rv.Type().ConvertibleTo(t) && (isNumber(rv.Kind()) && isNumber(t.Kind()) || rv.Kind() == t.Kind()) {
		return rv.Convert(t).Interface(), nil
	}
	return nil, fmt.Errorf("%w: cannot use %T as %s", validator.ErrTypeMismatch, value, t)
}

func isNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
