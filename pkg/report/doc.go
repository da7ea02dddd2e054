// Package report turns validation results into serializable reports and
// persists them.
//
// FromResult converts a sealed *pvframework.Result. Three Store
// implementations are provided:
//
//   - MemoryStore keeps the most recently used reports in a bounded LRU.
//   - RedisStore keeps JSON reports with an optional TTL and sorted-set indexes.
//   - PostgresStore keeps reports in the table created by pg.Migrate.
//
// All stores return ErrNotFound and ErrDuplicate so callers can match
// outcomes with errors.Is regardless of the backend.
package report
