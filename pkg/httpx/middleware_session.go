package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/authapp/identity/pkg/slogx"
)

// Principal describes the account behind a validated session handle.
type Principal struct {
	UserID    string
	Roles     []string
	SessionID string
}

// SessionAuthenticator resolves an opaque session handle to a principal.
// The auth service implements this; the indirection keeps httpx free of
// service imports.
type SessionAuthenticator interface {
	AuthenticateSession(ctx context.Context, handle string) (Principal, error)
}

// SessionAuthMiddleware requires a valid "Bearer <session-handle>" header,
// resolves it through the authenticator, and injects the principal into the
// request context.
func SessionAuthMiddleware(a SessionAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "missing session handle")
				return
			}
			handle := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			p, err := a.AuthenticateSession(ctx, handle)
			if err != nil {
				log.Warn("session validation failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, p.UserID)
			ctx = context.WithValue(ctx, CtxKeyRoles, p.Roles)
			ctx = context.WithValue(ctx, CtxKeySessionID, p.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAnyRole gates a handler on the caller holding at least one of the
// given roles. Must run after SessionAuthMiddleware.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, role := range required {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, role := range rolesFromContext(r.Context()) {
				if _, ok := want[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "forbidden")
		})
	}
}
