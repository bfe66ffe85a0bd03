package http

import (
	"net/http"
	"strings"

	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/identitysdk"
	"github.com/authapp/identity/pkg/slogx"
)

// LogoutHandler handles POST /v1/auth/logout.
type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Revoke the current session
//	@Description	Revokes the session handle in the Authorization header. Revoking an
//	@Description	unknown or already revoked handle still succeeds.
//	@Tags			Auth
//	@Produce		json
//	@Security		SessionAuth
//	@Success		200	{object}	identitysdk.MessageResponse
//	@Failure		500	{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handle := bearerHandle(r)

	if err := h.AuthService.Logout(r.Context(), handle); err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "error", err)
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{Message: "Logged out"})
}

// bearerHandle extracts the opaque handle from the Authorization header,
// or returns "" when absent.
func bearerHandle(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}
