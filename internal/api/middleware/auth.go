package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/redact"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/phrazzld/widget-api/internal/store"
)

// UnauthorizedBody is the fixed response body for requests the gate rejects.
var UnauthorizedBody = mustUnauthorizedBody()

func mustUnauthorizedBody() []byte {
	p := problem.MustNew(http.StatusUnauthorized, "")
	p.Set("detail", "Missing credentials")
	body, err := json.Marshal(p.Payload())
	if err != nil {
		// ALLOW-PANIC: static payload
		panic(err)
	}
	return body
}

// AuthGate admits requests that carry a valid bearer token for an existing
// user and rejects everything else with 401.
type AuthGate struct {
	jwtService auth.JWTService
	users      store.UserStore
	logger     *slog.Logger
}

// NewAuthGate creates an AuthGate. If logger is nil, slog.Default is used.
func NewAuthGate(jwtService auth.JWTService, users store.UserStore, logger *slog.Logger) *AuthGate {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthGate{
		jwtService: jwtService,
		users:      users,
		logger:     logger.With(slog.String("component", "auth_gate")),
	}
}

// Authenticate validates the Authorization header and forwards the request
// with the caller's identity attached to its context.
func (g *AuthGate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContextOrDefault(ctx, g.logger)

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			log.Debug("rejected request without bearer credentials")
			writeUnauthorized(w, log)
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug("rejected malformed authorization header")
			writeUnauthorized(w, log)
			return
		}

		claims, err := g.jwtService.ValidateToken(ctx, parts[1])
		if err != nil {
			log.Debug("rejected invalid token", slog.String("error", err.Error()))
			writeUnauthorized(w, log)
			return
		}

		user, err := g.users.GetByEmail(ctx, claims.Email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Debug("rejected token for unknown user")
			} else {
				log.Error("failed to look up token owner", slog.String("error", redact.Error(err)))
			}
			writeUnauthorized(w, log)
			return
		}

		id := auth.Identity{UserID: user.ID, Email: user.Email}
		ctx = auth.WithIdentity(ctx, id)
		ctx = logger.WithLogger(ctx, log.With(slog.String("user_id", id.UserID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write(UnauthorizedBody); err != nil {
		log.Error("failed to write unauthorized response", slog.String("error", err.Error()))
	}
}
