package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/domain"
	"github.com/naminara/ferry-logbook/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// claimsEchoHandler asserts that verified claims reached the request context.
func claimsEchoHandler(t *testing.T, want auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, want, claims)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthHandler_ValidToken(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	token, err := m.Issue(domain.User{ID: "u2", Role: domain.RoleCaptain})
	require.NoError(t, err)

	h := middleware.NewAuthHandler(m)(claimsEchoHandler(t, auth.Claims{UserID: "u2", Role: domain.RoleCaptain}))

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Rejections(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	h := middleware.NewAuthHandler(m)(okHandler)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
		})
	}
}

func TestRequireRole(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	adminOnly := middleware.NewAuthHandler(m)(middleware.RequireRole(domain.RoleAdmin)(okHandler))

	t.Run("allowed role", func(t *testing.T) {
		token, err := m.Issue(domain.User{ID: "u1", Role: domain.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		token, err := m.Issue(domain.User{ID: "u4", Role: domain.RoleCrew})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no claims in context", func(t *testing.T) {
		bare := middleware.RequireRole(domain.RoleAdmin)(okHandler)
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
