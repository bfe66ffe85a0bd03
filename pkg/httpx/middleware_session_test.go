package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/authapp/identity/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	principal httpx.Principal
	err       error
	handle    string
}

func (f *fakeAuthenticator) AuthenticateSession(_ context.Context, handle string) (httpx.Principal, error) {
	f.handle = handle
	if f.err != nil {
		return httpx.Principal{}, f.err
	}
	return f.principal, nil
}

func TestSessionAuthMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.UserIDFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id))
	})

	t.Run("missing header gets 401", func(t *testing.T) {
		auth := &fakeAuthenticator{}
		handler := httpx.SessionAuthMiddleware(auth)(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid handle gets 401", func(t *testing.T) {
		auth := &fakeAuthenticator{err: errors.New("invalid session")}
		handler := httpx.SessionAuthMiddleware(auth)(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-handle")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "bad-handle", auth.handle)
	})

	t.Run("valid handle injects principal", func(t *testing.T) {
		auth := &fakeAuthenticator{principal: httpx.Principal{
			UserID: "user-1",
			Roles:  []string{"USER"},
		}}
		handler := httpx.SessionAuthMiddleware(auth)(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-handle")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1", rec.Body.String())
	})
}

func TestRequireAnyRole(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(roles []string, required ...string) int {
		auth := &fakeAuthenticator{principal: httpx.Principal{UserID: "u", Roles: roles}}
		handler := httpx.Chain(okHandler,
			httpx.SessionAuthMiddleware(auth),
			httpx.RequireAnyRole(required...),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer handle")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, serve([]string{"ADMIN"}, "ADMIN"))
	require.Equal(t, http.StatusOK, serve([]string{"USER", "ADMIN"}, "ADMIN"))
	require.Equal(t, http.StatusForbidden, serve([]string{"USER"}, "ADMIN"))
	require.Equal(t, http.StatusForbidden, serve(nil, "ADMIN"))
}
