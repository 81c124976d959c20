package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAdmin(t *testing.T) {
	auth := NewAuthenticator(testSecret, quietLogger())

	var seenUser string
	handler := auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name     string
		header   string
		wantCode int
		wantUser string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + signToken(t, "other", jwt.MapClaims{"role": "admin", "exp": exp}), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized, ""},
		{"not admin", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "player", "exp": exp}), http.StatusForbidden, ""},
		{"admin", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "admin", "user_id": "u-7", "exp": exp}), http.StatusNoContent, "u-7"},
		{"admin numeric id", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "admin", "user_id": 42, "exp": exp}), http.StatusNoContent, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser = ""
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, seenUser)
		})
	}
}

func TestRequireAdmin_DisabledWithoutSecret(t *testing.T) {
	auth := NewAuthenticator("", quietLogger())
	handler := auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
