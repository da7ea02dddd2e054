package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/pvframework/pkg/httpserver"
)

// Healthcheck pings pool on every readiness probe.
func Healthcheck(pool *pgxpool.Pool) httpserver.Check {
	return func(ctx context.Context) error {
		if pool == nil {
			return ErrNilPool
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
