// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"inkpress/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// usernameKey is the context key for the authenticated username.
	usernameKey contextKey = "username"
)

// RequireAuth rejects requests without a valid session token cookie. On
// success the verified username is attached to the request context; the
// token payload is trusted once the signature verifies, no database lookup
// happens here. Tokens close to expiry are transparently re-issued on the
// response so active sessions keep sliding.
func RequireAuth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(token.CookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			if tokens.NearExpiry(claims) {
				// Refresh before the handler writes anything; a failed
				// re-issue just leaves the old cookie in place.
				if fresh, err := tokens.Issue(claims.Username); err == nil {
					tokens.SetCookie(w, fresh)
				}
			}

			ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromCtx extracts the authenticated username from the request
// context. Returns "" when the request did not pass RequireAuth.
func UsernameFromCtx(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// unauthorized writes the JSON 401 response shared by all rejection paths.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}`))
}
