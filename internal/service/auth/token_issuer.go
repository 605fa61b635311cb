package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/store"
)

// Token is the issued credential returned to the client.
type Token struct {
	Token string `json:"token"`
}

// TokenIssuer exchanges user credentials for a signed token.
type TokenIssuer struct {
	users    store.UserStore
	verifier PasswordVerifier
	jwt      JWTService
	logger   *slog.Logger
}

// NewTokenIssuer creates a TokenIssuer. If logger is nil, slog.Default is used.
func NewTokenIssuer(users store.UserStore, verifier PasswordVerifier, jwtService JWTService, logger *slog.Logger) *TokenIssuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenIssuer{
		users:    users,
		verifier: verifier,
		jwt:      jwtService,
		logger:   logger.With(slog.String("component", "token_issuer")),
	}
}

// Issue returns a token for the user identified by email when password
// matches. An unknown user and a wrong password both yield
// ErrInvalidCredentials.
func (i *TokenIssuer) Issue(ctx context.Context, email, password string) (*Token, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	user, err := i.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token requested for unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := i.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("token requested with wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	signed, err := i.jwt.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("token issued", slog.String("user_id", user.ID.String()))
	return &Token{Token: signed}, nil
}
