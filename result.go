package pvframework

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Result collects the findings of one validation run over one instance.
// Findings are appended while the run is in progress; once the run
// completes the Result is sealed and never changes again, so every
// aggregate is computed on first access and cached.
type Result struct {
	runID       string
	instanceKey string
	instance    any

	mu       sync.Mutex
	errs     []*ValidationError
	sealed   bool
	duration time.Duration

	sorted      lazy[[]*ValidationError]
	failures    lazy[[]*ValidationError]
	warnings    lazy[[]*ValidationError]
	byValidator lazy[map[string]int]
	byID        lazy[map[int]int]
	byKind      lazy[map[Kind]int]
}

type lazy[T any] struct {
	once  sync.Once
	value T
}

func (l *lazy[T]) get(compute func() T) T {
	l.once.Do(func() { l.value = compute() })
	return l.value
}

func newResult(instance any) *Result {
	return &Result{
		runID:       uuid.NewString(),
		instanceKey: InstanceKey(instance),
		instance:    instance,
	}
}

// add appends a finding. It reports false once the Result is sealed.
func (r *Result) add(e *ValidationError) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return false
	}
	r.errs = append(r.errs, e)
	return true
}

func (r *Result) seal(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
	r.duration = d
}

// all returns the findings in append order.
func (r *Result) all() []*ValidationError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs
}

// RunID uniquely identifies the validation run.
func (r *Result) RunID() string { return r.runID }

// InstanceKey is the identity key of the validated instance.
func (r *Result) InstanceKey() string { return r.instanceKey }

func (r *Result) Instance() any { return r.instance }

// Duration is the wall time of the run.
func (r *Result) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duration
}

// Errors returns every finding ordered by error ID, then location.
// The order does not depend on invocation scheduling.
func (r *Result) Errors() []*ValidationError { return slices.Clone(r.sortedErrors()) }

// Failures returns the findings of error-mode registrations.
func (r *Result) Failures() []*ValidationError { return slices.Clone(r.failureErrors()) }

// Warnings returns the findings of warning-mode registrations.
func (r *Result) Warnings() []*ValidationError { return slices.Clone(r.warningErrors()) }

// NumErrorsTotal counts all findings, warnings included.
func (r *Result) NumErrorsTotal() int { return len(r.sortedErrors()) }

func (r *Result) NumFails() int { return len(r.failureErrors()) }

func (r *Result) NumWarnings() int { return len(r.warningErrors()) }

// HasFailures reports whether any error-mode finding was recorded.
func (r *Result) HasFailures() bool { return r.NumFails() > 0 }

// Succeeded reports whether the instance passed; warnings do not fail it.
func (r *Result) Succeeded() bool { return !r.HasFailures() }

// Err joins all failures into one error, or returns nil when the instance passed.
func (r *Result) Err() error {
	failures := r.failureErrors()
	if len(failures) == 0 {
		return nil
	}
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// CountByValidator counts findings per validator name.
func (r *Result) CountByValidator() map[string]int {
	return maps.Clone(r.byValidator.get(func() map[string]int {
		return countBy(r.sortedErrors(), func(e *ValidationError) string { return e.Validator })
	}))
}

// CountByID counts findings per error ID.
func (r *Result) CountByID() map[int]int {
	return maps.Clone(r.byID.get(func() map[int]int {
		return countBy(r.sortedErrors(), func(e *ValidationError) int { return e.ID })
	}))
}

// CountByKind counts findings per kind.
func (r *Result) CountByKind() map[Kind]int {
	return maps.Clone(r.byKind.get(func() map[Kind]int {
		return countBy(r.sortedErrors(), func(e *ValidationError) Kind { return e.Kind })
	}))
}

func (r *Result) sortedErrors() []*ValidationError {
	return r.sorted.get(func() []*ValidationError {
		sorted := slices.Clone(r.all())
		slices.SortStableFunc(sorted, func(a, b *ValidationError) int {
			return cmp.Or(
				cmp.Compare(a.ID, b.ID),
				cmp.Compare(a.Location, b.Location),
				cmp.Compare(a.Validator, b.Validator),
			)
		})
		return sorted
	})
}

func (r *Result) failureErrors() []*ValidationError {
	return r.failures.get(func() []*ValidationError {
		return filter(r.sortedErrors(), (*ValidationError).Failure)
	})
}

func (r *Result) warningErrors() []*ValidationError {
	return r.warnings.get(func() []*ValidationError {
		return filter(r.sortedErrors(), func(e *ValidationError) bool { return !e.Failure() })
	})
}

func filter(errs []*ValidationError, keep func(*ValidationError) bool) []*ValidationError {
	out := make([]*ValidationError, 0, len(errs))
	for _, e := range errs {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func countBy[K comparable](errs []*ValidationError, key func(*ValidationError) K) map[K]int {
	counts := make(map[K]int)
	for _, e := range errs {
		counts[key(e)]++
	}
	return counts
}
