package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pvframework/pkg/environment"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/requestid"
)

// NewErrorHandler returns the default error handler. It logs client errors at
// warn level and server errors at error level, then writes a JSON error
// envelope. Outside production the message carries err's text.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		httpErr := classify(err)
		reqID := requestid.FromContext(r.Context())

		level := slog.LevelError
		if httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("httpapi"),
		)

		detail := ErrorDetail{Code: httpErr.Key, RequestID: reqID}
		switch {
		case httpErr.Code < http.StatusInternalServerError:
			detail.Message = err.Error()
		case !environment.IsProduction(r.Context()):
			detail.Message = err.Error()
		default:
			detail.Message = http.StatusText(httpErr.Code)
		}

		if renderErr := JSONError(httpErr.Code, detail).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.RequestID(reqID),
				logger.Error(renderErr),
			)
		}
	}
}
