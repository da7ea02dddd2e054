package locator

import (
	"fmt"
	"strings"
)

const wildcard = "[*]"

// Compile builds a Locator from a query expression.
//
// The expression is a dot-separated list of member names. A name may be
// followed by one or more "[*]" markers, each of which iterates the value with
// Elements:
//
//	customer.name
//	contracts[*].iban
//	matrix[*][*]
//	[*].id
func Compile(expr string, opts ...Option) (*Locator, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	l := New(opts...)
	for i, segment := range strings.Split(expr, ".") {
		name, iterations, err := splitSegment(segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExpression, expr, err)
		}
		if name == "" && (iterations == 0 || i > 0) {
			return nil, fmt.Errorf("%w: %q: empty member name in segment %d", ErrInvalidExpression, expr, i+1)
		}
		if name != "" {
			l = l.Path(name)
		}
		for range iterations {
			l = l.Iterate(Elements)
		}
	}
	return l, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts ...Option) *Locator {
	l, err := Compile(expr, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

func splitSegment(segment string) (string, int, error) {
	idx := strings.IndexByte(segment, '[')
	if idx < 0 {
		if strings.ContainsRune(segment, ']') {
			return "", 0, fmt.Errorf("unbalanced ']' in %q", segment)
		}
		return segment, 0, nil
	}

	name, rest := segment[:idx], segment[idx:]
	if strings.ContainsRune(name, ']') {
		return "", 0, fmt.Errorf("unbalanced ']' in %q", segment)
	}
	iterations := 0
	for rest != "" {
		if !strings.HasPrefix(rest, wildcard) {
			return "", 0, fmt.Errorf("only %s is supported inside brackets, got %q", wildcard, rest)
		}
		rest = rest[len(wildcard):]
		iterations++
	}
	return name, iterations, nil
}
