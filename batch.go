package pvframework

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch holds the results of validating several instances.
type Batch struct {
	results []*Result
	byKey   map[string]*Result
}

// ValidateAll validates every instance concurrently, each into its own
// Result. The first aborted run cancels the others and its error is returned.
func (m *Manager) ValidateAll(ctx context.Context, instances ...any) (*Batch, error) {
	results := make([]*Result, len(instances))

	g, gctx := errgroup.WithContext(ctx)
	if m.cfg.MaxConcurrency > 0 {
		g.SetLimit(m.cfg.MaxConcurrency)
	}
	for i, instance := range instances {
		g.Go(func() error {
			res, err := m.Validate(gctx, instance)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Batch{results: results, byKey: make(map[string]*Result, len(results))}
	for _, res := range results {
		if _, seen := b.byKey[res.InstanceKey()]; !seen {
			b.byKey[res.InstanceKey()] = res
		}
	}
	return b, nil
}

// Total is the number of validated instances.
func (b *Batch) Total() int { return len(b.results) }

// Results returns the results in the order the instances were given.
func (b *Batch) Results() []*Result {
	out := make([]*Result, len(b.results))
	copy(out, b.results)
	return out
}

// Result returns the result of instance, looked up by its identity key.
// Instances with the same key share one entry: the result of the first of
// them is returned. Use ResultAt to address each input separately.
func (b *Batch) Result(instance any) (*Result, bool) {
	res, ok := b.byKey[InstanceKey(instance)]
	return res, ok
}

// ResultAt returns the result of the i-th instance given to ValidateAll.
func (b *Batch) ResultAt(i int) (*Result, bool) {
	if i < 0 || i >= len(b.results) {
		return nil, false
	}
	return b.results[i], true
}

// Succeeded returns the results of instances without failures.
func (b *Batch) Succeeded() []*Result {
	var out []*Result
	for _, res := range b.results {
		if res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results of instances with at least one failure.
func (b *Batch) Failed() []*Result {
	var out []*Result
	for _, res := range b.results {
		if res.HasFailures() {
			out = append(out, res)
		}
	}
	return out
}

func (b *Batch) NumSucceeds() int { return len(b.Succeeded()) }

func (b *Batch) NumFails() int { return len(b.Failed()) }

// NumWarnings counts warnings over all instances.
func (b *Batch) NumWarnings() int {
	n := 0
	for _, res := range b.results {
		n += res.NumWarnings()
	}
	return n
}

// NumErrorsTotal counts findings over all instances.
func (b *Batch) NumErrorsTotal() int {
	n := 0
	for _, res := range b.results {
		n += res.NumErrorsTotal()
	}
	return n
}
