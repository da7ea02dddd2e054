package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/config"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/ratelimiter"
	"github.com/dmitrymomot/pvframework/pkg/report"
)

const contractsYAML = `
name: contracts
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
`

const (
	goodInstance = `{"customer":{"name":"Alice"},"contracts":[{"iban":"DE89370400440532013000"}]}`
	badInstance  = `{"customer":{"name":"Al"},"contracts":[{"iban":"DE89370400440532013001"}]}`
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pvserver dev\n", out)
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "contracts.yaml", contractsYAML)

	out, err := execute(t, "", "lint", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   contracts (2 rules)")

	broken := writeFile(t, t.TempDir(), "broken.yaml", `
name: broken
rules:
  - rule: no_such_rule
    params:
      value: x
`)
	out, err = execute(t, "", "lint", "--dir", dir, broken)
	require.ErrorIs(t, err, errLintFailed)
	assert.Contains(t, out, "FAIL broken")
	assert.Contains(t, err.Error(), "1 of 2")

	_, err = execute(t, "", "lint")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	rs := writeFile(t, dir, "contracts.yaml", contractsYAML)

	t.Run("passes", func(t *testing.T) {
		in := writeFile(t, dir, "good.json", goodInstance)
		out, err := execute(t, "", "validate", "-r", rs, "-i", in)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "PASS "), out)
	})

	t.Run("fails from stdin", func(t *testing.T) {
		out, err := execute(t, badInstance, "validate", "--ruleset", rs)
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, out, "FAIL ")
		assert.Contains(t, out, "1 failures, 1 warnings")
		assert.Contains(t, out, "[warning]")
	})

	t.Run("batch as json", func(t *testing.T) {
		out, err := execute(t, "["+goodInstance+","+badInstance+"]",
			"validate", "-r", rs, "--batch", "--format", "json")
		require.ErrorIs(t, err, errValidationFailed)

		var reports []report.Report
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 2)
		assert.True(t, reports[0].Succeeded)
		assert.False(t, reports[1].Succeeded)
		assert.Equal(t, "contracts", reports[1].Ruleset)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := execute(t, "{", "validate", "-r", rs)
		require.Error(t, err)
		_, err = execute(t, "[]", "validate", "-r", rs, "--batch")
		require.Error(t, err)
		_, err = execute(t, goodInstance, "validate", "-r", rs, "--format", "xml")
		require.Error(t, err)
		_, err = execute(t, goodInstance, "validate")
		require.Error(t, err)
	})
}

func TestRules(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, "sepa_iban")
	assert.Contains(t, out, "min_length")
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(config.ResetCache)

	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		cfg, err := loadConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, storeMemory, cfg.ReportStore)
		assert.Equal(t, "rulesets", cfg.RulesetsDir)
		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, []string{"X-Forwarded-For", "X-Real-IP"}, cfg.TrustedIPHeaders)
		assert.False(t, cfg.RateLimit.Enabled)
		assert.Equal(t, 60, cfg.RateLimit.Capacity)
	})

	t.Run("env file", func(t *testing.T) {
		config.ResetCache()
		envFile := writeFile(t, t.TempDir(), ".env", "PV_RULESETS_DIR=/etc/pv/rulesets\n")
		t.Cleanup(func() { _ = os.Unsetenv("PV_RULESETS_DIR") })

		cfg, err := loadConfig([]string{envFile})
		require.NoError(t, err)
		assert.Equal(t, "/etc/pv/rulesets", cfg.RulesetsDir)
	})

	t.Run("unknown store", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("PV_REPORT_STORE", "mongo")
		_, err := loadConfig(nil)
		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(serviceConfig{LogFormat: "xml"})
	require.Error(t, err)
	_, err = newLogger(serviceConfig{LogLevel: "loud"})
	require.Error(t, err)

	log, err := newLogger(serviceConfig{AppEnv: "production", LogLevel: "warn", LogFormat: "text", ServiceName: "pv"})
	require.NoError(t, err)
	assert.False(t, log.Enabled(context.Background(), -4))
}

func TestOpenReportStore_Memory(t *testing.T) {
	ctx := context.Background()

	backend, err := openReportStore(ctx, serviceConfig{ReportStore: storeMemory, ReportCacheSize: 2}, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(backend.close)
	require.NoError(t, backend.store.Save(ctx, report.Report{ID: "r1"}))
	assert.Empty(t, backend.checks)

	_, err = openReportStore(ctx, serviceConfig{ReportStore: storeMemory}, logger.Discard())
	require.Error(t, err)
	_, err = openReportStore(ctx, serviceConfig{ReportStore: "file"}, logger.Discard())
	require.Error(t, err)
}

func TestNewRateLimiter(t *testing.T) {
	ctx := context.Background()
	cfg := serviceConfig{RateLimit: ratelimiter.Config{Enabled: true, Capacity: 1, RefillRate: 1, RefillInterval: time.Minute}}

	limiter, closeLimiter, err := newRateLimiter(cfg, reportBackend{})
	require.NoError(t, err)
	t.Cleanup(closeLimiter)

	res, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	res, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	cfg.RateLimit.Capacity = 0
	_, _, err = newRateLimiter(cfg, reportBackend{})
	require.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestLint_ShippedRulesets(t *testing.T) {
	out, err := execute(t, "", "lint", "--dir", filepath.Join("..", "..", "rulesets"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok   contracts")
}
