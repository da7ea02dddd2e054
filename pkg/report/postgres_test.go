package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/pg"
	"github.com/dmitrymomot/pvframework/pkg/report"
)

type fakeRow struct {
	payload []byte
	err     error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.payload
	return nil
}

type fakeDB struct {
	execTag pgconn.CommandTag
	execErr error
	row     fakeRow
	args    []any
}

func (db *fakeDB) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	db.args = args
	return db.execTag, db.execErr
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	db.args = args
	return db.row
}

func TestPostgresStore_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.NewString()

	db := &fakeDB{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	s := report.NewPostgresStore(db)
	rep := sample(id, "key", time.Now())
	rep.Duration = 3 * time.Millisecond
	require.NoError(t, s.Save(ctx, rep))
	require.Len(t, db.args, 9)
	assert.Equal(t, id, db.args[0])
	assert.Equal(t, int64(3_000_000), db.args[6])

	assert.ErrorIs(t, s.Save(ctx, sample("not-a-uuid", "key", time.Now())), report.ErrInvalidReport)

	db.execErr = &pgconn.PgError{Code: "23505"}
	assert.ErrorIs(t, s.Save(ctx, rep), report.ErrDuplicate)

	db.execErr = errors.New("connection reset")
	err := s.Save(ctx, rep)
	require.Error(t, err)
	assert.NotErrorIs(t, err, report.ErrDuplicate)
}

func TestPostgresStore_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.NewString()

	payload, err := json.Marshal(sample(id, "key", time.Now()))
	require.NoError(t, err)
	db := &fakeDB{row: fakeRow{payload: payload}}
	s := report.NewPostgresStore(db)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "key", got.InstanceKey)

	db.row = fakeRow{err: pgx.ErrNoRows}
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, report.ErrNotFound)

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, report.ErrNotFound)

	db.row = fakeRow{payload: []byte("{")}
	_, err = s.Get(ctx, id)
	assert.Error(t, err)
}

func TestPostgresStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}
	s := report.NewPostgresStore(db)
	require.NoError(t, s.Delete(ctx, uuid.NewString()))

	db.execTag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, s.Delete(ctx, uuid.NewString()), report.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), report.ErrNotFound)
}

// TestPostgresStore_Integration runs against PV_TEST_PG_URL when set.
func TestPostgresStore_Integration(t *testing.T) {
	url := os.Getenv("PV_TEST_PG_URL")
	if url == "" {
		t.Skip("PV_TEST_PG_URL not set")
	}
	ctx := context.Background()

	pool, err := pg.Connect(ctx, pg.Config{ConnectionString: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, pg.Config{MigrationsTable: "pv_schema_migrations"}, nil))

	s := report.NewPostgresStore(pool)
	instance := "it-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	first := sample(uuid.NewString(), instance, now)
	second := sample(uuid.NewString(), instance, now.Add(time.Second))
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))
	assert.ErrorIs(t, s.Save(ctx, first), report.ErrDuplicate)

	list, err := s.List(ctx, report.Filter{InstanceKey: instance})
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids(list))

	require.NoError(t, s.Delete(ctx, first.ID))
	require.NoError(t, s.Delete(ctx, second.ID))
	_, err = s.Get(ctx, first.ID)
	assert.ErrorIs(t, err, report.ErrNotFound)
}
