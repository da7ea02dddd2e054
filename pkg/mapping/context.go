package mapping

import (
	"context"
	"fmt"
)

type argumentsKey struct{}

// WithArguments returns a copy of ctx carrying the argument set of one invocation.
func WithArguments(ctx context.Context, args *ArgumentSet) context.Context {
	return context.WithValue(ctx, argumentsKey{}, args)
}

// ArgumentsFromContext returns the argument set stored by WithArguments.
func ArgumentsFromContext(ctx context.Context) (*ArgumentSet, bool) {
	args, ok := ctx.Value(argumentsKey{}).(*ArgumentSet)
	return args, ok && args != nil
}

// Param returns the argument bound to name for the invocation running with ctx.
// It lets a context-aware validator tell a provided value from a default.
func Param(ctx context.Context, name string) (Argument, error) {
	args, ok := ArgumentsFromContext(ctx)
	if !ok {
		return Argument{}, ErrNoArguments
	}
	a, ok := args.Get(name)
	if !ok {
		return Argument{}, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return a, nil
}
