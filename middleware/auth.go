package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

const (
	jwtClaimUserID  = "user_id"
	jwtClaimSubject = "sub"
	jwtClaimRole    = "role"

	RoleAdmin = "admin"
)

// Authenticator verifies HS256 bearer tokens issued by the account service.
type Authenticator struct {
	secret []byte
	logger *slog.Logger
}

// NewAuthenticator returns a guard for secret. An empty secret disables
// every check, which is only meant for local development.
func NewAuthenticator(secret string, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	if secret == "" {
		logger.Warn("JWT_SECRET_KEY is empty, admin routes are unprotected")
	}
	return &Authenticator{secret: []byte(secret), logger: logger}
}

func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// RequireAdmin lets a request through only with a valid token whose role
// claim is admin.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.parse(r)
		if err != nil {
			a.logger.DebugContext(r.Context(), "rejected admin request", slog.Any("error", err))
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if role, _ := claims[jwtClaimRole].(string); role != RoleAdmin {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) parse(r *http.Request) (jwt.MapClaims, error) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// GetUserIDFromContext returns the caller id from the verified token,
// taken from user_id or, failing that, sub.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context")
	}
	for _, key := range []string{jwtClaimUserID, jwtClaimSubject} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", v), nil
		}
	}
	return "", fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
