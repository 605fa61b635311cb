package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/mocks"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantUnauthorized = `{"detail":"Missing credentials","status":401,"type":"about:blank","title":"Unauthorized"}`

func TestUnauthorizedBody(t *testing.T) {
	assert.Equal(t, wantUnauthorized, string(UnauthorizedBody))
}

func TestAuthGate(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "user@example.com", HashedPassword: "hash"}

	tests := []struct {
		name         string
		header       string
		validateErr  error
		claimsEmail  string
		lookupErr    error
		wantStatus   int
		wantValidate []string
	}{
		{name: "valid token", header: "Bearer good", claimsEmail: user.Email, wantStatus: http.StatusOK, wantValidate: []string{"good"}},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "lowercase prefix", header: "bearer good", wantStatus: http.StatusUnauthorized},
		{name: "prefix without space", header: "Bearergood", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer good extra", wantStatus: http.StatusUnauthorized},
		{name: "double space", header: "Bearer  good", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", validateErr: auth.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantValidate: []string{""}},
		{name: "invalid token", header: "Bearer bad", validateErr: auth.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantValidate: []string{"bad"}},
		{name: "expired token", header: "Bearer old", validateErr: auth.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantValidate: []string{"old"}},
		{name: "unknown user", header: "Bearer good", claimsEmail: "ghost@example.com", wantStatus: http.StatusUnauthorized, wantValidate: []string{"good"}},
		{name: "lookup failure", header: "Bearer good", claimsEmail: user.Email, lookupErr: errors.New("db down"), wantStatus: http.StatusUnauthorized, wantValidate: []string{"good"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      &auth.Claims{Email: tt.claimsEmail, UserID: user.ID},
			}
			users := mocks.NewMockUserStore(user)
			users.GetByEmailError = tt.lookupErr

			var gotIdentity auth.Identity
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotIdentity, _ = auth.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			NewAuthGate(jwtService, users, nil).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantValidate, jwtService.ValidatedTokens)

			if tt.wantStatus == http.StatusOK {
				require.True(t, called)
				assert.Equal(t, auth.Identity{UserID: user.ID, Email: user.Email}, gotIdentity)
				return
			}
			assert.False(t, called)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, wantUnauthorized, rec.Body.String())
		})
	}
}

func TestAuthGateUsesRequestContext(t *testing.T) {
	type key struct{}
	var seen context.Context

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			seen = ctx
			return nil, auth.ErrInvalidToken
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "value"))
	req.Header.Set("Authorization", "Bearer token")

	NewAuthGate(jwtService, mocks.NewMockUserStore(), nil).
		Authenticate(http.NotFoundHandler()).
		ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "value", seen.Value(key{}))
}
