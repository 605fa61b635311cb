package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/widget-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token identifying user by email.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken verifies the signature and time claims of tokenString and
	// returns its claims. Failures are ErrInvalidToken, ErrExpiredToken or
	// ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a valid token.
type Claims struct {
	// Email identifies the user the token was issued to.
	Email string `json:"email"`

	// UserID is informational; lookups go through Email.
	UserID uuid.UUID `json:"uid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
