package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/pvframework/pkg/httpserver"
)

// Healthcheck pings client on every readiness probe.
func Healthcheck(client redis.UniversalClient) httpserver.Check {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
