package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-commerce-api/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// TokenCookie is the http-only cookie the login handlers set.
const TokenCookie = "token"

// Auth verifies bearer tokens and attaches the caller's claims to the
// request context. Missing or bad credentials are 401; a valid token with
// the wrong role is 403.
type Auth struct {
	issuer *utils.TokenIssuer
}

func NewAuth(issuer *utils.TokenIssuer) *Auth {
	return &Auth{issuer: issuer}
}

// Authenticate accepts the token from the Authorization header or, as a
// fallback, the http-only cookie.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			if c, err := r.Cookie(TokenCookie); err == nil {
				tokenStr = c.Value
			}
		}
		if tokenStr == "" {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		claims, err := a.issuer.Verify(tokenStr)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures that the authenticated user has the admin role
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}
		if claims.Role != "admin" {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom extracts the authenticated caller's claims from the request
// context.
func ClaimsFrom(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
