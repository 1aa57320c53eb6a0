/*
middleware.go - Session middleware

Bearer-token authentication for the API routes. RequireAuth verifies the
token and stashes the Session in the request context; RequireAdmin
additionally gates on role. Agent-scoped routes check that an agent only
reads their own dashboard.
*/
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/hcs/commission-engine/auth"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionFrom extracts the authenticated session from the request
// context. The bool is false on routes that skipped RequireAuth.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}

// RequireAuth verifies the bearer token and injects the session.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		session, err := h.Signer.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route on the admin role. Must run inside
// RequireAuth.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFrom(r.Context())
		if !ok || session.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, "Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
