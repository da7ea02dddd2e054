package report

import (
	"cmp"
	"context"
	"slices"
)

// DefaultListLimit applies when Filter.Limit is not positive.
const DefaultListLimit = 50

// Filter narrows List results.
type Filter struct {
	// InstanceKey restricts the result to reports of one instance.
	InstanceKey string
	// Limit caps the number of reports; newest first.
	Limit int
}

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store persists reports.
type Store interface {
	// Save stores a new report. A report with the same ID yields ErrDuplicate.
	Save(ctx context.Context, r Report) error
	// Get returns the report with id or ErrNotFound.
	Get(ctx context.Context, id string) (Report, error)
	// List returns reports matching f, newest first.
	List(ctx context.Context, f Filter) ([]Report, error)
	// Delete removes the report with id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

func sortNewestFirst(reports []Report) {
	slices.SortStableFunc(reports, func(a, b Report) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}
