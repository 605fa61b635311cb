package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/widget-api/internal/config"
	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "user@example.com", HashedPassword: "x"}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	user := testUser()

	svc, err := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenUniqueIDs(t *testing.T) {
	t.Parallel()

	svc, err := newHMACJWTService(testSecret, time.Hour, time.Now)
	require.NoError(t, err)
	user := testUser()

	first, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each token carries its own jti")
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	user := testUser()

	issuer, err := newHMACJWTService(testSecret, lifetime, fixedClock(issuedAt))
	require.NoError(t, err)
	token, err := issuer.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	otherIssuer, err := newHMACJWTService("wrong-secret-that-is-long-enough-for-testing", lifetime, fixedClock(issuedAt))
	require.NoError(t, err)
	foreignToken, err := otherIssuer.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		Email:            user.Email,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{"valid", token, issuedAt.Add(time.Minute), nil},
		{"within clock skew after expiry", token, issuedAt.Add(lifetime + time.Minute), nil},
		{"expired", token, issuedAt.Add(lifetime + 10*time.Minute), ErrExpiredToken},
		{"wrong signature", foreignToken, issuedAt, ErrInvalidToken},
		{"malformed", "not.a.jwt", issuedAt, ErrInvalidToken},
		{"empty", "", issuedAt, ErrInvalidToken},
		{"missing email claim", noEmail, issuedAt, ErrInvalidToken},
		{"none algorithm", noneAlg, issuedAt, ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := newHMACJWTService(testSecret, lifetime, fixedClock(tt.now))
			require.NoError(t, err)

			claims, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.Email, claims.Email)
		})
	}
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 15})
	assert.NoError(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 15})
	assert.ErrorContains(t, err, "at least 32")

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)
}
