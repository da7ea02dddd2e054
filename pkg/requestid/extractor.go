package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/pvframework/pkg/logger"
)

// LoggerExtractor lets loggers built with logger.WithContextExtractors add
// the request identifier to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
