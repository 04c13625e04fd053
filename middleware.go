package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"skywatch/models"
	"skywatch/reports"
)

type ctxKey string

const identityKey ctxKey = "identity"

// requireAuth validates the Bearer token and injects the caller identity
// into the request context. When roles are given, callers whose role is not
// in the set get 403.
func (a *App) requireAuth(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				errorJSON(w, "Unauthorized - Token required", http.StatusUnauthorized)
				return
			}
			ident, err := parseJWT(a.cfg.JWTSecret, strings.TrimPrefix(authz, "Bearer "))
			if err != nil {
				errorJSON(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}
			if len(roles) > 0 && !roleAllowed(ident.Role, roles) {
				msg := fmt.Sprintf("Access denied. Required role: %s, but user has role: %s",
					joinRoles(roles), ident.Role)
				errorJSON(w, msg, http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// mustIdentity returns the caller identity from context. Only valid below
// requireAuth.
func mustIdentity(r *http.Request) reports.Identity {
	val := r.Context().Value(identityKey)
	if val == nil {
		return reports.Identity{}
	}
	return val.(reports.Identity)
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func joinRoles(roles []models.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, " or ")
}
