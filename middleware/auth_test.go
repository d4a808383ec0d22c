package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-commerce-api/utils"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingToken(t *testing.T) {
	auth := NewAuth(utils.NewTokenIssuer("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/orders/mine", nil)
	rec := httptest.NewRecorder()
	auth.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedToken(t *testing.T) {
	auth := NewAuth(utils.NewTokenIssuer("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/orders/mine", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	auth.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBearerHeader(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	auth := NewAuth(issuer)
	token, err := issuer.Generate("u1", "ada@example.com", "user")
	require.NoError(t, err)

	var seen *utils.Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFrom(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.UserID)
	assert.Equal(t, "user", seen.Role)
}

func TestAuthenticateCookieFallback(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	auth := NewAuth(issuer)
	token, err := issuer.Generate("u1", "ada@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders/mine", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	rec := httptest.NewRecorder()
	auth.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	auth := NewAuth(issuer)
	token, err := issuer.Generate("u1", "ada@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(auth.RequireAdmin(okHandler())).ServeHTTP(rec, req)

	// Authenticated but not authorized: 403, not 401.
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	auth := NewAuth(issuer)
	token, err := issuer.Generate("u1", "root@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(auth.RequireAdmin(okHandler())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
