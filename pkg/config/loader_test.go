package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/config"
)

type serviceConfig struct {
	RulesetsDir string        `env:"TEST_PV_RULESETS_DIR" envDefault:"rulesets"`
	CacheSize   int           `env:"TEST_PV_REPORT_CACHE_SIZE" envDefault:"128"`
	TTL         time.Duration `env:"TEST_PV_REPORT_TTL" envDefault:"24h"`
}

type requiredConfig struct {
	DSN string `env:"TEST_PV_REQUIRED_DSN,required"`
}

type fileConfig struct {
	Store string `env:"TEST_PV_FILE_STORE"`
	Size  int    `env:"TEST_PV_FILE_SIZE"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg serviceConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "rulesets", cfg.RulesetsDir)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, 24*time.Hour, cfg.TTL)
}

func TestLoad_ManagerConfig(t *testing.T) {
	config.ResetCache()
	t.Setenv("PV_MAX_CONCURRENCY", "4")
	t.Setenv("PV_DEFAULT_MODE", "warning")
	t.Setenv("PV_INVOCATION_TIMEOUT", "250ms")

	var cfg pvframework.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, pvframework.ModeWarning, cfg.DefaultMode)
	assert.Equal(t, 250*time.Millisecond, cfg.InvocationTimeout)
}

func TestLoad_InvalidMode(t *testing.T) {
	config.ResetCache()
	t.Setenv("PV_DEFAULT_MODE", "fatal")

	var cfg pvframework.Config
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	var pe env.ParseError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, pe.Err, pvframework.ErrInvalidMode)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_PV_RULESETS_DIR", "first")

	var first serviceConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_PV_RULESETS_DIR", "second")
	var second serviceConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.RulesetsDir)

	config.ResetCache()
	var third serviceConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.RulesetsDir)
}

func TestLoad_MissingRequiredIsRetried(t *testing.T) {
	config.ResetCache()
	require.NoError(t, os.Unsetenv("TEST_PV_REQUIRED_DSN"))

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_PV_REQUIRED_DSN", "postgres://localhost/pv")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "postgres://localhost/pv", cfg.DSN)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *serviceConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()
	require.NoError(t, os.Unsetenv("TEST_PV_REQUIRED_DSN"))

	var cfg requiredConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	var svc serviceConfig
	assert.NotPanics(t, func() { config.MustLoad(&svc) })
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_PV_FILE_STORE=redis\nTEST_PV_FILE_SIZE=64\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("TEST_PV_FILE_STORE")
		_ = os.Unsetenv("TEST_PV_FILE_SIZE")
	})

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, 64, cfg.Size)
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	config.ResetCache()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_PV_FILE_STORE=postgres\n"), 0o600))
	t.Setenv("TEST_PV_FILE_STORE", "memory")

	require.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "memory", os.Getenv("TEST_PV_FILE_STORE"))
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "absent.env")) })
}
