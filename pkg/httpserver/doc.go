// Package httpserver runs the validation service's HTTP listener with
// graceful shutdown.
//
// Run blocks until the context is canceled, SIGINT or SIGTERM arrives, or
// Shutdown is called; in-flight requests get the configured shutdown timeout
// to finish.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler adapts dependency probes, such as redis.Healthcheck and
// pg.Healthcheck, to liveness and readiness endpoints.
package httpserver
