package validator_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/validator"
)

func isNumeric(value string) error {
	if _, err := strconv.Atoi(value); err != nil {
		return fmt.Errorf("%q is not numeric", value)
	}
	return nil
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("descriptors", func(t *testing.T) {
		t.Parallel()

		v, err := validator.New("check_iban", func(iban string, country string, strict bool) error { return nil },
			validator.Required("iban"),
			validator.Optional("country", "DE"),
			validator.Optional("strict", false),
		)
		require.NoError(t, err)

		assert.Equal(t, "check_iban", v.Name())
		assert.Equal(t, []string{"iban", "country", "strict"}, v.ParamNames())
		assert.Equal(t, []string{"iban"}, v.RequiredNames())
		assert.Equal(t, map[string]any{"country": "DE", "strict": false}, v.OptionalDefaults())
		assert.False(t, v.ContextAware())

		typ, ok := v.DeclaredType("strict")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[bool](), typ)

		_, ok = v.DeclaredType("missing")
		assert.False(t, ok)

		d, ok := v.Param("country")
		require.True(t, ok)
		assert.Equal(t, 1, d.Position)
		assert.False(t, d.Required)

		assert.True(t, v.IsRequired("iban"))
		assert.False(t, v.IsRequired("country"))
		assert.Equal(t, `check_iban(iban string, country string = "DE", strict bool = false)`, v.String())
	})

	t.Run("name from function", func(t *testing.T) {
		t.Parallel()

		v, err := validator.New("", isNumeric, validator.Required("value"))
		require.NoError(t, err)
		assert.Equal(t, "isNumeric", v.Name())
	})

	t.Run("context aware", func(t *testing.T) {
		t.Parallel()

		v, err := validator.New("lookup", func(ctx context.Context, id int) error { return nil }, validator.Required("id"))
		require.NoError(t, err)
		assert.True(t, v.ContextAware())
		assert.Equal(t, []string{"id"}, v.ParamNames())
	})

	t.Run("no parameters", func(t *testing.T) {
		t.Parallel()

		v, err := validator.New("always", func() {})
		require.NoError(t, err)
		assert.Empty(t, v.ParamNames())
		assert.Empty(t, v.RequiredNames())
	})
}

func TestNew_InvalidSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     any
		params []validator.Param
	}{
		{name: "nil function", fn: nil},
		{name: "typed nil function", fn: (func(int) error)(nil), params: []validator.Param{validator.Required("a")}},
		{name: "not a function", fn: 42},
		{name: "missing parameter info", fn: func(a, b int) error { return nil }, params: []validator.Param{validator.Required("a")}},
		{name: "too many descriptors", fn: func(a int) error { return nil }, params: []validator.Param{validator.Required("a"), validator.Required("b")}},
		{name: "variadic", fn: func(a ...int) error { return nil }, params: []validator.Param{validator.Required("a")}},
		{name: "non-error result", fn: func(a int) bool { return true }, params: []validator.Param{validator.Required("a")}},
		{name: "two results", fn: func(a int) (int, error) { return 0, nil }, params: []validator.Param{validator.Required("a")}},
		{name: "empty name", fn: func(a int) {}, params: []validator.Param{validator.Required("")}},
		{name: "duplicate name", fn: func(a, b int) {}, params: []validator.Param{validator.Required("a"), validator.Required("a")}},
		{name: "default of wrong type", fn: func(a int) {}, params: []validator.Param{validator.Optional("a", "one")}},
		{name: "nil default for value type", fn: func(a int) {}, params: []validator.Param{validator.Optional("a", nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := validator.New("broken", tt.fn, tt.params...)
			require.Error(t, err)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, validator.ErrInvalidSignature)

			var sigErr *validator.SignatureError
			require.ErrorAs(t, err, &sigErr)
			assert.Equal(t, "broken", sigErr.Validator)
			assert.NotEmpty(t, sigErr.Reason)
		})
	}

	t.Run("MustNew panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { validator.MustNew("broken", 1) })
	})
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success and failure", func(t *testing.T) {
		t.Parallel()

		v := validator.MustNew("is_numeric", isNumeric, validator.Required("value"))
		assert.NoError(t, v.Invoke(ctx, map[string]any{"value": "123"}))
		assert.EqualError(t, v.Invoke(ctx, map[string]any{"value": "12a"}), `"12a" is not numeric`)
	})

	t.Run("optional default", func(t *testing.T) {
		t.Parallel()

		var got string
		v := validator.MustNew("country", func(iban, country string) { got = country },
			validator.Required("iban"),
			validator.Optional("country", "DE"),
		)

		require.NoError(t, v.Invoke(ctx, map[string]any{"iban": "x"}))
		assert.Equal(t, "DE", got)

		require.NoError(t, v.Invoke(ctx, map[string]any{"iban": "x", "country": "FR"}))
		assert.Equal(t, "FR", got)
	})

	t.Run("numeric conversion", func(t *testing.T) {
		t.Parallel()

		var got int64
		v := validator.MustNew("amount", func(amount int64) { got = amount }, validator.Required("amount"))
		require.NoError(t, v.Invoke(ctx, map[string]any{"amount": 42}))
		assert.Equal(t, int64(42), got)
	})

	t.Run("nil for nilable", func(t *testing.T) {
		t.Parallel()

		called := false
		v := validator.MustNew("ptr", func(p *int) { called = p == nil }, validator.Required("p"))
		require.NoError(t, v.Invoke(ctx, map[string]any{"p": nil}))
		assert.True(t, called)
	})

	t.Run("argument mismatch", func(t *testing.T) {
		t.Parallel()

		v := validator.MustNew("is_numeric", isNumeric, validator.Required("value"))
		err := v.Invoke(ctx, map[string]any{"value": 123})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrTypeMismatch)

		var argErr *validator.ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "value", argErr.Param)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		v := validator.MustNew("panics", func(a int) { panic(boom) }, validator.Required("a"))

		var err error
		assert.NotPanics(t, func() { err = v.Invoke(ctx, map[string]any{"a": 1}) })
		assert.ErrorIs(t, err, validator.ErrPanicked)
		assert.ErrorIs(t, err, boom)

		var panicErr *validator.PanicError
		require.ErrorAs(t, err, &panicErr)
		assert.Equal(t, "panics", panicErr.Validator)
		assert.NotEmpty(t, panicErr.Stack)
	})

	t.Run("context is passed", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		runCtx := context.WithValue(ctx, key{}, "run-1")

		var got any
		v := validator.MustNew("ctx", func(ctx context.Context, a int) error {
			got = ctx.Value(key{})
			return ctx.Err()
		}, validator.Required("a"))

		require.NoError(t, v.Invoke(runCtx, map[string]any{"a": 1}))
		assert.Equal(t, "run-1", got)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, v.Invoke(canceled, map[string]any{"a": 1}), context.Canceled)
	})
}
