package ruleset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/mapping"
	"github.com/dmitrymomot/pvframework/pkg/rules"
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

const contractsYAML = `
name: contracts
description: SEPA contract checks
rules:
  - name: iban_valid
    rule: sepa_iban
    mapping: parallel
    params:
      iban: contracts[*].iban
  - name: holder_name
    rule: min_length
    mode: warning
    params:
      value: customer.name
    consts:
      min: 3
  - name: currency_allowed
    rule: one_of
    error_id: 4200001
    timeout: 1s
    params:
      value: contracts[*].currency
    consts:
      options: [EUR, CHF]
`

func contractsInstance() map[string]any {
	return map[string]any{
		"customer": map[string]any{"name": "Al"},
		"contracts": []any{
			map[string]any{"iban": "DE89370400440532013000", "currency": "EUR"},
			map[string]any{"iban": "DE89370400440532013001", "currency": "USD"},
		},
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := ruleset.Parse([]byte(contractsYAML))
	require.NoError(t, err)
	assert.Equal(t, "contracts", f.Name)
	require.Len(t, f.Rules, 3)
	assert.Equal(t, "sepa_iban", f.Rules[0].Rule)
	assert.Equal(t, ruleset.MappingParallel, f.Rules[0].MappingKind())
	assert.Equal(t, ruleset.MappingPath, f.Rules[1].MappingKind())
	assert.Equal(t, ruleset.MappingQuery, f.Rules[2].MappingKind())
	assert.Equal(t, 3, f.Rules[1].Consts["min"])
	assert.Equal(t, 4200001, f.Rules[2].ErrorID)

	out, err := ruleset.Marshal(f)
	require.NoError(t, err)
	again, err := ruleset.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":        "",
		"missing name": "rules: []",
		"unknown key":  "name: x\nrulez: []",
		"bad yaml":     "name: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ruleset.Parse([]byte(doc))
			assert.ErrorIs(t, err, ruleset.ErrInvalidRuleset)
		})
	}
}

func TestMappingKind_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ruleset.MappingDirect, ruleset.Rule{Rule: "numeric", Consts: map[string]any{"value": "1"}}.MappingKind())
	assert.Equal(t, ruleset.MappingPath, ruleset.Rule{Params: map[string]string{"value": "a.b"}}.MappingKind())
	assert.Equal(t, ruleset.MappingQuery, ruleset.Rule{Params: map[string]string{"value": "a[*]"}}.MappingKind())
	assert.Equal(t, ruleset.MappingParallel, ruleset.Rule{Mapping: "Parallel"}.MappingKind())
	assert.Equal(t, "iban", ruleset.Rule{Rule: "iban"}.ValidatorName())
}

func TestCompileAndValidate(t *testing.T) {
	t.Parallel()

	f, err := ruleset.Parse([]byte(contractsYAML))
	require.NoError(t, err)
	rs, err := ruleset.Compile(f, rules.Default())
	require.NoError(t, err)
	assert.Equal(t, "contracts", rs.Name())
	assert.Equal(t, "SEPA contract checks", rs.Description())
	require.Len(t, rs.Entries(), 3)
	assert.IsType(t, &mapping.ParallelQuery{}, rs.Entries()[0].Mapping)
	assert.IsType(t, &mapping.Path{}, rs.Entries()[1].Mapping)
	assert.IsType(t, &mapping.Query{}, rs.Entries()[2].Mapping)

	m := pvframework.NewManager()
	require.NoError(t, rs.Register(m))
	regs := m.Registrations()
	require.Len(t, regs, 3)
	assert.Equal(t, pvframework.ModeWarning, regs[1].Mode)
	assert.Equal(t, 4200001, regs[2].ErrorID)

	res, err := m.Validate(context.Background(), contractsInstance())
	require.NoError(t, err)
	assert.Equal(t, 2, res.NumFails())
	assert.Equal(t, 1, res.NumWarnings())
	assert.Equal(t, map[string]int{"iban_valid": 1, "holder_name": 1, "currency_allowed": 1}, res.CountByValidator())
	assert.Equal(t, 1, res.CountByID()[4200001])

	for _, e := range res.Errors() {
		switch e.Validator {
		case "iban_valid":
			assert.Equal(t, "contracts[1].iban", e.Location)
			assert.ErrorIs(t, e, rules.ErrInvalidChecksum)
		case "currency_allowed":
			assert.Equal(t, "contracts[1].currency", e.Location)
		case "holder_name":
			assert.Equal(t, "customer.name", e.Location)
		}
	}
}

func TestCompile_Direct(t *testing.T) {
	t.Parallel()

	f := ruleset.File{Name: "static", Rules: []ruleset.Rule{
		{Name: "const_iban", Rule: "iban", Consts: map[string]any{"iban": "DE89370400440532013001"}},
	}}
	rs, err := ruleset.Compile(f, nil)
	require.NoError(t, err)
	assert.IsType(t, &mapping.Direct{}, rs.Entries()[0].Mapping)

	m := pvframework.NewManager()
	require.NoError(t, rs.Register(m))
	res, err := m.Validate(context.Background(), struct{}{})
	require.NoError(t, err)
	require.Equal(t, 1, res.NumFails())
	assert.Equal(t, mapping.LocationDirect, res.Errors()[0].Location)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]ruleset.Rule{
		"unknown rule":      {Rule: "nope", Params: map[string]string{"value": "a"}},
		"unknown mapping":   {Rule: "numeric", Mapping: "zip", Params: map[string]string{"value": "a"}},
		"unknown parameter": {Rule: "numeric", Params: map[string]string{"value": "a", "extra": "b"}},
		"unmapped":          {Rule: "in_range", Params: map[string]string{"value": "a"}},
		"bad expression":    {Rule: "numeric", Mapping: "query", Params: map[string]string{"value": "a[0]"}},
		"bad mode":          {Rule: "numeric", Mode: "fatal", Params: map[string]string{"value": "a"}},
		"bad timeout":       {Rule: "numeric", Timeout: "soon", Params: map[string]string{"value": "a"}},
		"negative timeout":  {Rule: "numeric", Timeout: "-1s", Params: map[string]string{"value": "a"}},
		"direct params":     {Rule: "numeric", Mapping: "direct", Params: map[string]string{"value": "a"}},
		"bad const":         {Rule: "min_length", Params: map[string]string{"value": "a"}, Consts: map[string]any{"min": "x"}},
	}
	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ruleset.Compile(ruleset.File{Name: "broken", Rules: []ruleset.Rule{r}}, rules.Default())
			assert.ErrorIs(t, err, ruleset.ErrInvalidRuleset)
		})
	}

	_, err := ruleset.Compile(ruleset.File{Name: "empty"}, nil)
	assert.ErrorIs(t, err, ruleset.ErrInvalidRuleset)
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_contracts.yaml"), []byte(contractsYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_accounts.yml"), []byte(`
name: accounts
rules:
  - rule: numeric
    params:
      value: account
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700))

	files, err := ruleset.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "accounts", files[0].Name)
	assert.Equal(t, "contracts", files[1].Name)

	_, err = ruleset.LoadDir(filepath.Join(dir, "absent"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_broken.yaml"), []byte("rules: []"), 0o600))
	_, err = ruleset.LoadDir(dir)
	assert.ErrorIs(t, err, ruleset.ErrInvalidRuleset)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := ruleset.NewRegistry(nil)
	f, err := ruleset.Parse([]byte(contractsYAML))
	require.NoError(t, err)

	set, err := reg.Add(f)
	require.NoError(t, err)
	assert.Len(t, set.Manager.Registrations(), 3)

	_, err = reg.Add(f)
	assert.ErrorIs(t, err, ruleset.ErrDuplicateRuleset)

	f.Rules = f.Rules[:1]
	replaced, err := reg.Replace(f)
	require.NoError(t, err)
	assert.Len(t, replaced.Manager.Registrations(), 1)

	got, err := reg.Get("contracts")
	require.NoError(t, err)
	assert.Same(t, replaced, got)
	assert.Equal(t, []string{"contracts"}, reg.Names())
	assert.Equal(t, 1, reg.Len())
	assert.NotNil(t, reg.Catalog())

	require.NoError(t, reg.Remove("contracts"))
	_, err = reg.Get("contracts")
	assert.ErrorIs(t, err, ruleset.ErrRulesetNotFound)
	assert.ErrorIs(t, reg.Remove("contracts"), ruleset.ErrRulesetNotFound)
}

func TestRegistry_LoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts.yaml"), []byte(contractsYAML), 0o600))

	reg := ruleset.NewRegistry(rules.Default(), pvframework.WithConcurrency(2))
	require.NoError(t, reg.LoadDir(dir))

	set, err := reg.Get("contracts")
	require.NoError(t, err)
	res, err := set.Manager.Validate(context.Background(), contractsInstance())
	require.NoError(t, err)
	assert.False(t, res.Succeeded())
}
