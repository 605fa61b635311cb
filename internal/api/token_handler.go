package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/widget-api/internal/api/shared"
	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/service/auth"
)

var errMissingBasicAuth = errors.New("missing basic credentials")

// TokenIssuer exchanges credentials for a token.
type TokenIssuer interface {
	Issue(ctx context.Context, email, password string) (*auth.Token, error)
}

// TokenHandler serves POST /tokens.
type TokenHandler struct {
	issuer TokenIssuer
	logger *slog.Logger
}

// NewTokenHandler creates a TokenHandler. If logger is nil, slog.Default is used.
func NewTokenHandler(issuer TokenIssuer, logger *slog.Logger) *TokenHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenHandler{
		issuer: issuer,
		logger: logger.With(slog.String("component", "token_handler")),
	}
}

// Create issues a token for the user named by the request's HTTP Basic
// credentials.
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) error {
	email, password, ok := r.BasicAuth()
	if !ok {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("token requested without basic credentials")
		return problem.Status(http.StatusUnauthorized, errMissingBasicAuth)
	}

	token, err := h.issuer.Issue(r.Context(), email, password)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, token)
	return nil
}
