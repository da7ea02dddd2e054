package pvframework

import "time"

// Config holds the manager settings read from the environment.
type Config struct {
	// MaxConcurrency bounds the invocations in flight per run; 0 means unlimited.
	MaxConcurrency int `env:"PV_MAX_CONCURRENCY" envDefault:"0"`
	// DefaultMode applies to registrations without WithMode.
	DefaultMode Mode `env:"PV_DEFAULT_MODE" envDefault:"error"`
	// InvocationTimeout applies to registrations without WithTimeout; 0 disables it.
	InvocationTimeout time.Duration `env:"PV_INVOCATION_TIMEOUT" envDefault:"0s"`
}

// DefaultConfig returns the settings used when no Config is given.
func DefaultConfig() Config {
	return Config{DefaultMode: ModeError}
}
