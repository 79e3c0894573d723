package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/notes-api-nosql/internal/domain"
	jwtinfra "github.com/notes-api-nosql/internal/infrastructure/jwt"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

// AccountResolver looks up the account a token points at. A token whose
// account no longer exists is treated as invalid.
type AccountResolver interface {
	GetByID(ctx context.Context, userID string) (*domain.Account, error)
}

// Auth returns middleware that validates the Bearer token, resolves the
// account and injects the resulting Identity into the request context.
// The request suspends until resolution completes; there is no background
// validation.
func Auth(verifier TokenVerifier, accounts AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			claims, err := verifier.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}
			acct, err := accounts.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token. User not found.")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, acct.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(domain.Identity)
	return ident, ok
}

// WithIdentity returns a context carrying the given identity. Intended for
// handler tests that bypass the Auth middleware.
func WithIdentity(ctx context.Context, ident domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
