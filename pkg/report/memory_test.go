package report_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/report"
)

func sample(id, instance string, created time.Time) report.Report {
	return report.Report{ID: id, InstanceKey: instance, Succeeded: true, CreatedAt: created, Findings: []report.Finding{}}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := report.NewMemoryStore(10)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, sample("a", "k1", base)))
	require.NoError(t, s.Save(ctx, sample("b", "k2", base.Add(time.Minute))))
	require.NoError(t, s.Save(ctx, sample("c", "k1", base.Add(2*time.Minute))))
	assert.Equal(t, 3, s.Len())

	assert.ErrorIs(t, s.Save(ctx, sample("a", "k1", base)), report.ErrDuplicate)
	assert.ErrorIs(t, s.Save(ctx, sample("", "k1", base)), report.ErrInvalidReport)

	got, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "k2", got.InstanceKey)

	_, err = s.Get(ctx, "zzz")
	assert.ErrorIs(t, err, report.ErrNotFound)

	all, err := s.List(ctx, report.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(all))

	k1, err := s.List(ctx, report.Filter{InstanceKey: "k1", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(k1))

	require.NoError(t, s.Delete(ctx, "c"))
	assert.ErrorIs(t, s.Delete(ctx, "c"), report.ErrNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_Evicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := report.NewMemoryStore(2)
	now := time.Now()

	for i := range 3 {
		require.NoError(t, s.Save(ctx, sample(fmt.Sprintf("r%d", i), "k", now.Add(time.Duration(i)*time.Second))))
	}
	assert.Equal(t, 2, s.Len())
	_, err := s.Get(ctx, "r0")
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestMemoryStore_DefaultLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := report.NewMemoryStore(report.DefaultListLimit + 10)
	now := time.Now()

	for i := range report.DefaultListLimit + 5 {
		require.NoError(t, s.Save(ctx, sample(fmt.Sprintf("r%03d", i), "k", now.Add(time.Duration(i)*time.Millisecond))))
	}
	list, err := s.List(ctx, report.Filter{InstanceKey: "k"})
	require.NoError(t, err)
	assert.Len(t, list, report.DefaultListLimit)
}

func ids(reports []report.Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.ID
	}
	return out
}
