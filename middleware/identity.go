// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollbooth/auth"
	"github.com/danielhkuo/pollbooth/models"
)

// PollPasswordHeader carries the password of a private poll
const PollPasswordHeader = "X-Poll-Password"

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying the caller identity
func ContextWithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity attached by WithIdentity
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(models.Identity)
	return id, ok
}

// WithIdentity resolves the Bearer session token, when present, into the
// request context. A malformed or invalid token is rejected with 401.
func WithIdentity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				ErrorResponse(w, http.StatusUnauthorized, "Authorization must be a Bearer token")
				return
			}

			id, err := auth.ParseSessionToken(strings.TrimSpace(token), secret)
			if err != nil {
				slog.Warn("rejected session token", "error", err, "client_ip", GetClientIP(r))
				ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
		})
	}
}

// RequireIdentity lets through any authenticated caller, user or admin
func RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		next(w, r)
	}
}

// RequireUser lets through authenticated non-admin users
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		if id.Admin {
			ErrorResponse(w, http.StatusForbidden, "Admins cannot use user endpoints")
			return
		}
		next(w, r)
	}
}

// RequireAdmin lets through admins only
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		if !id.Admin {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}
