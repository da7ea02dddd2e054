// Package pg connects to PostgreSQL with pgx/v5 and applies the schema of the
// report store with goose.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
// The migrations are embedded in the binary, so no files need to ship next
// to it. Healthcheck adapts the pool to the HTTP readiness probe, and
// IsNotFoundError / IsDuplicateKeyError classify driver errors for the store.
package pg
