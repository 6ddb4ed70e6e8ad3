// Package auth provides the HTTP middleware that authenticates bearer
// tokens and enforces role requirements. Claims are stashed in the request
// context under unexported typed keys.
package auth

import (
	"context"
	"net/http"
	"strings"

	"angodata/internal/jwttoken"
	derrors "angodata/pkg/domain-errors"
	"angodata/pkg/platform/httputil"
)

// TokenValidator verifies an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

type contextKey struct{ name string }

var claimsKey = &contextKey{"auth claims"}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*jwttoken.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwttoken.Claims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer access token.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, derrors.New(derrors.CodeUnauthorized, "missing or malformed authorization header"))
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			if claims.TokenType != jwttoken.TokenTypeAccess {
				httputil.WriteError(w, derrors.New(derrors.CodeUnauthorized, "invalid token"))
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose role is not in the
// allowed set. Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				httputil.WriteError(w, derrors.New(derrors.CodeUnauthorized, "authentication required"))
				return
			}
			if !allowed[claims.Role] {
				httputil.WriteError(w, derrors.New(derrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for RequireRole("admin").
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole("admin")
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
