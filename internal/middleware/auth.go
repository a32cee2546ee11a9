package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFromContext returns the verified token claims, or nil on
// unauthenticated routes.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

// WithAuth rejects requests without a valid bearer token and stores the
// claims on the request context.
func WithAuth(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				deny(w, http.StatusForbidden, "Token is required for authentication.")
				return
			}
			raw = strings.TrimPrefix(raw, "Bearer ")

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards slot management routes. The role comes from the
// server-issued token, never from anything the client asserts.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := ClaimsFromContext(r.Context())
			if c == nil || c.Role != model.RoleAdmin {
				deny(w, http.StatusForbidden, "Admin access required.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, status int, msg string) {
	denyCode(w, status, msg, "unauthorized")
}

func denyCode(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg, "code": code})
}
