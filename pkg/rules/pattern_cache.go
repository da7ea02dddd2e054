package rules

import (
	"regexp"

	"github.com/dmitrymomot/pvframework/pkg/cache"
)

type compiled struct {
	re  *regexp.Regexp
	err error
}

var patterns = cache.New[string, compiled](256)

func compilePattern(pattern string) (*regexp.Regexp, error) {
	c := patterns.Load(pattern, func() compiled {
		re, err := regexp.Compile(pattern)
		return compiled{re: re, err: err}
	})
	return c.re, c.err
}
