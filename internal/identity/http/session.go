package http

import (
	"net/http"

	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/identitysdk"
)

// SessionHandler handles GET /v1/auth/session.
type SessionHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Validate the current session
//	@Description	Resolves the session handle in the Authorization header. Expired and
//	@Description	revoked handles are indistinguishable from unknown ones.
//	@Tags			Auth
//	@Produce		json
//	@Security		SessionAuth
//	@Success		200	{object}	identitysdk.SessionResponse
//	@Failure		401	{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, err := h.AuthService.ValidateSession(r.Context(), bearerHandle(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.SessionResponse{
		SessionID: session.ID.String(),
		UserID:    session.UserID.String(),
		ExpiresAt: session.ExpiresAt,
	})
}
