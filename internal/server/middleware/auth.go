// Package middleware provides HTTP middleware that resolves the caller's identity.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/identity"
)

// TokenValidator verifies a bearer token and returns the identity it carries.
type TokenValidator interface {
	ValidateToken(tokenString string) (identity.Identity, error)
}

// OptionalAuth resolves the request identity. A request without an
// Authorization header proceeds as the guest; a header that is malformed or
// carries an invalid token is rejected with 401. With a nil validator every
// request is the guest.
func OptionalAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if validator == nil || authHeader == "" {
				next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), identity.Guest())))
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			id, err := validator.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
