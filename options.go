package pvframework

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger findings are reported to. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTypeChecker replaces the type-conformance check run before every invocation.
func WithTypeChecker(c validator.TypeChecker) Option {
	return func(m *Manager) {
		if c != nil {
			m.checker = c
		}
	}
}

// WithObserver registers an observer of invocations and runs.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithConcurrency bounds the invocations in flight per run; n <= 0 means unlimited.
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		m.cfg.MaxConcurrency = max(n, 0)
	}
}

// WithConfig applies cfg. An empty DefaultMode keeps ModeError.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		if cfg.DefaultMode == "" {
			cfg.DefaultMode = ModeError
		}
		cfg.MaxConcurrency = max(cfg.MaxConcurrency, 0)
		m.cfg = cfg
	}
}

// RegisterOption configures a single registration.
type RegisterOption func(*Registration)

// WithMode sets whether findings of the registration fail the instance.
func WithMode(mode Mode) RegisterOption {
	return func(r *Registration) { r.Mode = mode }
}

// WithErrorID pins the ID of every finding of the registration.
func WithErrorID(id int) RegisterOption {
	return func(r *Registration) { r.ErrorID = id }
}

// WithTimeout stops waiting for an invocation after d and records ErrTimeout.
// Context-aware validators see their context canceled at the same time.
func WithTimeout(d time.Duration) RegisterOption {
	return func(r *Registration) { r.Timeout = d }
}

// Observer receives measurements of validation activity.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveInvocation(validator string, outcome Outcome, d time.Duration)
	ObserveRun(r *Result)
}

// Outcome is the result of one invocation.
type Outcome string

const (
	OutcomePassed   Outcome = "passed"
	OutcomeFailed   Outcome = "failed"
	OutcomePanicked Outcome = "panicked"
	OutcomeTimeout  Outcome = "timeout"
)

type noopObserver struct{}

func (noopObserver) ObserveInvocation(string, Outcome, time.Duration) {}
func (noopObserver) ObserveRun(*Result)                                {}
