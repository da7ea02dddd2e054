// Package requestid correlates HTTP requests with log records.
//
// Middleware accepts a client supplied X-Request-ID when it is well formed
// and otherwise generates a UUID. The identifier is echoed in the response,
// stored in the request context and can be added to every log record with
// LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	router.Use(requestid.Middleware)
package requestid
