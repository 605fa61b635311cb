package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/widget-api/internal/api/shared"
	"github.com/phrazzld/widget-api/internal/platform/logger"
)

// Trace assigns each request a trace ID, echoes it in the X-Trace-ID header
// and stores a logger carrying it in the request context. A trace ID already
// in the context wins, then the ID set by chi's RequestID middleware.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			traceID := shared.GetTraceID(ctx)
			if traceID == "" {
				traceID = chimw.GetReqID(ctx)
			}
			if traceID == "" {
				traceID = shared.NewTraceID()
			}
			ctx = shared.WithTraceID(ctx, traceID)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
