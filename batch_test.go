package pvframework_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/locator"
	"github.com/dmitrymomot/pvframework/pkg/mapping"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

func TestValidateAll(t *testing.T) {
	t.Parallel()

	m := pvframework.NewManager(pvframework.WithConcurrency(2))
	require.NoError(t, m.Register(mustPath(t, numericValidator, map[string]string{"value": "number"})))
	require.NoError(t, m.Register(mustPath(t, numericValidator, map[string]string{"value": "name"}), pvframework.WithMode(pvframework.ModeWarning)))

	good := customer{Number: "1", Name: "2"}
	bad := customer{Number: "x", Name: "2"}
	warned := customer{Number: "3", Name: "y"}

	batch, err := m.ValidateAll(context.Background(), good, bad, warned)
	require.NoError(t, err)

	assert.Equal(t, 3, batch.Total())
	assert.Equal(t, 2, batch.NumSucceeds())
	assert.Equal(t, 1, batch.NumFails())
	assert.Equal(t, 1, batch.NumWarnings())
	assert.Equal(t, 2, batch.NumErrorsTotal())

	res, ok := batch.Result(bad)
	require.True(t, ok)
	assert.True(t, res.HasFailures())
	assert.Equal(t, bad, res.Instance())

	require.Len(t, batch.Failed(), 1)
	assert.Same(t, res, batch.Failed()[0])
	assert.Len(t, batch.Results(), 3)
	assert.Equal(t, good, batch.Results()[0].Instance())
}

func TestValidateAll_EqualInstances(t *testing.T) {
	t.Parallel()

	m := pvframework.NewManager()
	require.NoError(t, m.Register(mustPath(t, numericValidator, map[string]string{"value": "number"})))

	first := customer{Number: "x"}
	second := customer{Number: "x"}
	batch, err := m.ValidateAll(context.Background(), first, second)
	require.NoError(t, err)
	require.Equal(t, 2, batch.Total())

	r0, ok := batch.ResultAt(0)
	require.True(t, ok)
	r1, ok := batch.ResultAt(1)
	require.True(t, ok)
	assert.NotSame(t, r0, r1)
	assert.Equal(t, 2, batch.NumFails())

	byKey, ok := batch.Result(second)
	require.True(t, ok)
	assert.Same(t, r0, byKey, "equal instances share the first result")

	_, ok = batch.ResultAt(2)
	assert.False(t, ok)
	_, ok = batch.ResultAt(-1)
	assert.False(t, ok)
}

func TestValidateAll_Abort(t *testing.T) {
	t.Parallel()

	pair := validator.MustNew("pair", func(a, b string) {}, validator.Required("a"), validator.Required("b"))
	mp, err := mapping.NewParallelQuery(pair, map[string]*locator.Locator{
		"a": locator.MustCompile("tags[*]"),
		"b": locator.MustCompile("banking_data_per_contract[*].iban"),
	})
	require.NoError(t, err)

	m := pvframework.NewManager()
	require.NoError(t, m.Register(mp))

	ok := customer{Tags: []string{"a"}}
	broken := customer{
		Tags:                   []string{"a", "b", "c"},
		BankingDataPerContract: map[string]bankingData{"x": {}, "y": {}},
	}

	batch, err := m.ValidateAll(context.Background(), ok, broken)
	assert.Nil(t, batch)
	assert.ErrorIs(t, err, mapping.ErrIterationLengthMismatch)
}
