package ruleset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

const accountsYAML = `
name: accounts
rules:
  - rule: numeric
    params:
      value: account
`

func TestRegistry_Reload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts.yaml"), []byte(contractsYAML), 0o600))

	reg := ruleset.NewRegistry(nil)
	f, err := ruleset.Parse([]byte(accountsYAML))
	require.NoError(t, err)
	_, err = reg.Add(f)
	require.NoError(t, err)

	require.NoError(t, reg.Reload(dir))
	assert.Equal(t, []string{"contracts"}, reg.Names())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("rules: []"), 0o600))
	require.ErrorIs(t, reg.Reload(dir), ruleset.ErrInvalidRuleset)
	assert.Equal(t, []string{"contracts"}, reg.Names(), "failed reload keeps previous sets")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(contractsYAML), 0o600))
	require.ErrorIs(t, reg.Reload(dir), ruleset.ErrDuplicateRuleset)
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts.yaml"), []byte(contractsYAML), 0o600))

	reg := ruleset.NewRegistry(nil)
	require.NoError(t, reg.LoadDir(dir))

	reloads := make(chan error, 8)
	w := ruleset.NewWatcher(reg, dir,
		ruleset.WithDebounce(20*time.Millisecond),
		ruleset.OnReload(func(err error) {
			select {
			case reloads <- err:
			default:
			}
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// Keep writing until the watcher has registered the directory.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "accounts.yaml"), []byte(accountsYAML), 0o600)
		select {
		case err := <-reloads:
			return err == nil && reg.Len() == 2
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	_, err := reg.Get("accounts")
	require.NoError(t, err)
}

func TestWatcher_MissingDir(t *testing.T) {
	t.Parallel()

	w := ruleset.NewWatcher(ruleset.NewRegistry(nil), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, w.Run(context.Background()))
}
