package middleware

import (
	"net/http"

	"github.com/phrazzld/widget-api/internal/problem"
	"golang.org/x/time/rate"
)

// RateLimit admits at most limit requests per second (with bursts of burst)
// across all clients and answers the rest with a 429 problem. A
// non-positive limit disables limiting.
func RateLimit(limit float64, burst int, builder *problem.Builder) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				builder.Write(w, r, problem.MustNew(http.StatusTooManyRequests, ""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
