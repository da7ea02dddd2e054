// Package logger builds slog loggers for the validation framework and its
// service.
//
// New returns a *slog.Logger configured by options. WithEnvironment picks the
// level and format for an APP_ENV value (text at debug level in development,
// JSON at info level elsewhere) and tags records with service and env.
// Options applied after it override the preset.
//
// Records carry attributes extracted from their context. Every logger adds
// the run identifier stored with WithRunID, so all findings of one
// validation run share a run_id. WithContextExtractors adds more, for example
// the request identifier of an HTTP call.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Parse(os.Getenv("APP_ENV")), "pvserver"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	ctx := logger.WithRunID(ctx, runID)
//	log.ErrorContext(ctx, "validation failed",
//		logger.Validator("check_iban"),
//		logger.Location("contracts[1].iban"),
//	)
//
// The attribute helpers (Validator, Location, ErrorID, Kind, RunID,
// RequestID, Count, Component, Error) keep key names consistent. Error and
// Errors return an empty attribute for nil errors, which slog drops.
package logger
