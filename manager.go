package pvframework

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/pvframework/pkg/async"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/mapping"
	"github.com/dmitrymomot/pvframework/pkg/validator"
)

// Registration is one entry of the manager registry.
type Registration struct {
	Mapping mapping.Mapping
	Mode    Mode
	// ErrorID overrides the stable error ID when non-zero.
	ErrorID int
	// Timeout bounds each invocation when positive.
	Timeout time.Duration
}

// Manager holds registered mappings and validates instances against them.
// It is safe for concurrent use; registrations may be added while
// validations are running and take effect for runs started afterwards.
type Manager struct {
	mu       sync.RWMutex
	registry []Registration

	cfg      Config
	logger   *slog.Logger
	checker  validator.TypeChecker
	observer Observer
}

// NewManager creates a manager with an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		cfg:      DefaultConfig(),
		logger:   logger.Discard(),
		checker:  validator.Assignable,
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("pvframework"))
	return m
}

// Register appends mp to the registry. Registering the same mapping twice
// yields two independent entries.
func (m *Manager) Register(mp mapping.Mapping, opts ...RegisterOption) error {
	if mp == nil {
		return ErrNilMapping
	}

	reg := Registration{Mapping: mp, Mode: m.cfg.DefaultMode, Timeout: m.cfg.InvocationTimeout}
	for _, opt := range opts {
		opt(&reg)
	}
	if _, err := ParseMode(string(reg.Mode)); err != nil {
		return err
	}
	if reg.ErrorID != 0 && (reg.ErrorID < minErrorID || reg.ErrorID > maxErrorID) {
		return fmt.Errorf("pvframework: error id %d out of range [%d, %d]", reg.ErrorID, minErrorID, maxErrorID)
	}

	m.mu.Lock()
	m.registry = append(m.registry, reg)
	m.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on error.
func (m *Manager) MustRegister(mp mapping.Mapping, opts ...RegisterOption) {
	if err := m.Register(mp, opts...); err != nil {
		panic(err)
	}
}

// Registrations returns the registry in registration order.
func (m *Manager) Registrations() []Registration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Registration, len(m.registry))
	copy(out, m.registry)
	return out
}

type invocation struct {
	reg  Registration
	args *mapping.ArgumentSet
}

// Validate runs every registered mapping against instance and returns the
// sealed Result. Findings never abort the run. The only error returned is
// one from a mapping that could not provide its arguments, such as
// mapping.ErrIterationLengthMismatch; no Result exists in that case.
func (m *Manager) Validate(ctx context.Context, instance any) (*Result, error) {
	start := time.Now()
	regs := m.Registrations()
	res := newResult(instance)
	ctx = logger.WithRunID(ctx, res.RunID())

	plans := make([][]mapping.Provision, len(regs))
	for i, reg := range regs {
		provisions, err := reg.Mapping.Provide(instance)
		if err != nil {
			m.logger.ErrorContext(ctx, "validation aborted",
				logger.Validator(reg.Mapping.Validator().Name()),
				logger.Mapping(reg.Mapping.String()),
				logger.Instance(res.InstanceKey()),
				logger.Error(err),
			)
			return nil, fmt.Errorf("validate with %s: %w", reg.Mapping, err)
		}
		plans[i] = provisions
	}

	sem := async.NewSemaphore(m.cfg.MaxConcurrency)
	var (
		calls   []invocation
		futures []*async.Future[struct{}]
	)
	for i, reg := range regs {
		for _, p := range plans[i] {
			if p.Missing() {
				m.record(ctx, res, m.finding(reg, KindMissingValue, nil, p.Location(), p.Err, instance))
				continue
			}
			if err := m.checkTypes(reg.Mapping.Validator(), p.Args); err != nil {
				m.record(ctx, res, m.finding(reg, KindTypeMismatch, p.Args, p.Args.Location(), err, instance))
				continue
			}

			call := invocation{reg: reg, args: p.Args}
			calls = append(calls, call)
			futures = append(futures, async.Async(ctx, call, func(ctx context.Context, call invocation) (struct{}, error) {
				m.invoke(ctx, sem, res, call)
				return struct{}{}, nil
			}))
		}
	}

	// A future only fails when ctx was canceled before its invocation started.
	_, errs := async.Gather(futures...)
	for i, err := range errs {
		if err != nil {
			call := calls[i]
			m.record(ctx, res, m.finding(call.reg, KindFunctionRaised, call.args, call.args.Location(), err, instance))
		}
	}

	res.seal(time.Since(start))
	m.observer.ObserveRun(res)
	m.logger.DebugContext(ctx, "validation completed",
		logger.Instance(res.InstanceKey()),
		logger.Count("errors_total", res.NumErrorsTotal()),
		logger.Count("fails", res.NumFails()),
		logger.Count("warnings", res.NumWarnings()),
		logger.Duration(res.Duration()),
	)
	return res, nil
}

func (m *Manager) invoke(ctx context.Context, sem *async.Semaphore, res *Result, call invocation) {
	v := call.reg.Mapping.Validator()
	if err := sem.Acquire(ctx); err != nil {
		m.record(ctx, res, m.finding(call.reg, KindFunctionRaised, call.args, call.args.Location(), err, res.Instance()))
		return
	}
	defer sem.Release()

	callCtx := mapping.WithArguments(ctx, call.args)
	start := time.Now()

	var err error
	if call.reg.Timeout > 0 {
		err = invokeWithTimeout(callCtx, v, call.args.Values(), call.reg.Timeout)
	} else {
		err = v.Invoke(callCtx, call.args.Values())
	}
	m.observer.ObserveInvocation(v.Name(), outcomeOf(err), time.Since(start))
	if err == nil {
		return
	}

	kind := KindFunctionRaised
	var argErr *validator.ArgumentError
	if errors.As(err, &argErr) {
		kind = KindTypeMismatch
	}
	m.record(ctx, res, m.finding(call.reg, kind, call.args, call.args.Location(), err, res.Instance()))
}

func invokeWithTimeout(ctx context.Context, v *validator.Validator, args map[string]any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	f := async.Async(ctx, args, func(ctx context.Context, args map[string]any) (struct{}, error) {
		return struct{}{}, v.Invoke(ctx, args)
	})
	_, err := f.AwaitWithTimeout(timeout)
	if err != nil && (errors.Is(err, async.ErrTimeout) || errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	return err
}

func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomePassed
	case errors.Is(err, validator.ErrPanicked):
		return OutcomePanicked
	case errors.Is(err, ErrTimeout):
		return OutcomeTimeout
	default:
		return OutcomeFailed
	}
}

// checkTypes checks every provided argument against its declared type.
func (m *Manager) checkTypes(v *validator.Validator, args *mapping.ArgumentSet) error {
	var errs []error
	for _, a := range args.Provided() {
		typ, ok := v.DeclaredType(a.Name)
		if !ok {
			continue
		}
		if err := m.checker.Check(a.Value, typ); err != nil {
			errs = append(errs, fmt.Errorf("parameter %q: %w", a.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) finding(reg Registration, kind Kind, args *mapping.ArgumentSet, location string, cause error, instance any) *ValidationError {
	name := reg.Mapping.Validator().Name()
	id := reg.ErrorID
	if id == 0 {
		id = ErrorID(name, kind, cause)
	}
	return &ValidationError{
		ID:        id,
		Kind:      kind,
		Mode:      reg.Mode,
		Validator: name,
		Mapping:   reg.Mapping.String(),
		Location:  location,
		Arguments: args,
		Cause:     cause,
		Instance:  instance,
	}
}

func (m *Manager) record(ctx context.Context, res *Result, e *ValidationError) {
	if !res.add(e) {
		return
	}

	attrs := []any{
		logger.ErrorID(e.ID),
		logger.Kind(e.Kind),
		logger.Validator(e.Validator),
		logger.Location(e.Location),
		logger.Instance(res.InstanceKey()),
		logger.Error(e.Cause),
	}
	if e.Failure() {
		m.logger.ErrorContext(ctx, "validation error", attrs...)
		return
	}
	m.logger.WarnContext(ctx, "validation warning", attrs...)
}
