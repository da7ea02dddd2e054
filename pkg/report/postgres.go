package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/pvframework/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps reports in the validation_reports table created by
// pg.Migrate. The full report is stored as JSONB; summary columns are kept
// alongside for querying.
type PostgresStore struct {
	db DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a store on db.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertReport = `INSERT INTO validation_reports
    (id, instance_key, succeeded, num_errors, num_fails, num_warnings, duration_ns, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	selectReport     = `SELECT payload FROM validation_reports WHERE id = $1`
	listReports      = `SELECT payload FROM validation_reports ORDER BY created_at DESC, id LIMIT $1`
	listInstanceRpts = `SELECT payload FROM validation_reports WHERE instance_key = $1 ORDER BY created_at DESC, id LIMIT $2`
	deleteReport     = `DELETE FROM validation_reports WHERE id = $1`
)

func (s *PostgresStore) Save(ctx context.Context, r Report) error {
	if !isUUID(r.ID) {
		return fmt.Errorf("%w: id %q is not a UUID", ErrInvalidReport, r.ID)
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", r.ID, err)
	}

	_, err = s.db.Exec(ctx, insertReport,
		r.ID, r.InstanceKey, r.Succeeded, r.NumErrors, r.NumFails, r.NumWarnings,
		r.Duration.Nanoseconds(), payload, r.CreatedAt)
	if pg.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.ID, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Report, error) {
	// ids are run IDs; anything else cannot be stored in the uuid column
	if !isUUID(id) {
		return Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	var payload []byte
	err := s.db.QueryRow(ctx, selectReport, id).Scan(&payload)
	if pg.IsNotFoundError(err) {
		return Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Report{}, fmt.Errorf("get report %s: %w", id, err)
	}
	return decode(id, payload)
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Report, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if f.InstanceKey == "" {
		rows, err = s.db.Query(ctx, listReports, f.limit())
	} else {
		rows, err = s.db.Query(ctx, listInstanceRpts, f.InstanceKey, f.limit())
	}
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	payloads, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	out := make([]Report, 0, len(payloads))
	for _, p := range payloads {
		r, err := decode("", p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	tag, err := s.db.Exec(ctx, deleteReport, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
