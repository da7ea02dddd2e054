package httpapi

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/pvframework/pkg/clientip"
	"github.com/dmitrymomot/pvframework/pkg/ratelimiter"
	"github.com/dmitrymomot/pvframework/pkg/requestid"
)

// rateLimit takes one token per request from the caller's bucket. A store
// failure lets the request through.
func rateLimit(b *ratelimiter.Bucket, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientip.FromContext(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}
			res, err := b.Allow(r.Context(), key)
			if err != nil {
				log.WarnContext(r.Context(), "rate limiter unavailable",
					slog.String("client_ip", key), slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			if res.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			retry := int(math.Ceil(res.RetryAfter().Seconds()))
			h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
			_ = JSONError(http.StatusTooManyRequests, ErrorDetail{
				Code:      ErrTooManyRequests.Key,
				Message:   "rate limit exceeded",
				RequestID: requestid.FromContext(r.Context()),
			}).Render(w, r)
		})
	}
}
