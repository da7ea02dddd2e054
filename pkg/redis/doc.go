// Package redis connects to the Redis server backing the report store.
//
// Connect retries the initial ping according to Config, and Healthcheck
// adapts a client to the readiness probe used by the HTTP server:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := report.NewRedisStore(client, report.WithRedisPrefix(cfg.KeyPrefix))
//
// Errors wrap the go-redis cause with errors.Join so both the sentinel and the
// driver error can be matched.
package redis
