package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/redact"
)

// Recover turns a panic in a handler into a 500 problem response.
func Recover(builder *problem.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC: net/http uses this sentinel to abort the response
					panic(rec)
				}

				logger.FromContextOrDefault(r.Context(), slog.Default()).Error("recovered from panic",
					slog.String("panic", redact.String(fmt.Sprint(rec))),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))

				builder.Write(w, r, problem.MustNew(http.StatusInternalServerError, ""))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
