package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/redact"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/phrazzld/widget-api/internal/store"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error
// instead of writing an error response itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts h to an http.HandlerFunc. It is the one place where a
// handler's error becomes a response: problem errors are written as they
// are, everything else is mapped with ProblemFor.
func Wrap(builder *problem.Builder, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		p := ProblemFor(err)
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		if p.StatusCode() >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("error", redact.Error(err)),
				slog.String("error_type", fmt.Sprintf("%T", err)))
		} else {
			log.Debug("request rejected", slog.String("error", redact.Error(err)))
		}

		builder.Write(w, r, p)
	}
}

// ProblemFor returns the problem sent to the client for err. Internal
// error messages never reach the payload.
func ProblemFor(err error) *problem.Problem {
	if p, ok := problem.From(err); ok {
		return p
	}
	return problem.MustNew(MapErrorToStatusCode(err), "")
}

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case store.IsDuplicateError(err):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
