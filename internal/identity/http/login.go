package http

import (
	"encoding/json"
	"net/http"

	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/identitysdk"
)

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Authenticate an account
//	@Description	Verifies the email and password and, on success, issues an opaque session handle.
//	@Description	Failure responses never distinguish an unknown email from a wrong password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	identitysdk.LoginResponse	"success, message, session handle"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	identitysdk.LoginResponse	"success=false, message"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	res := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		status := http.StatusUnauthorized
		if res.Reason == service.ReasonStorageError {
			status = http.StatusInternalServerError
		}
		httpx.WriteJSON(w, status, identitysdk.LoginResponse{
			Success: false,
			Message: res.Message,
		})
		return
	}

	roles := make([]string, 0, len(res.Roles))
	for _, role := range res.Roles {
		roles = append(roles, role.String())
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.LoginResponse{
		Success:       true,
		Message:       res.Message,
		UserID:        res.UserID.String(),
		Email:         res.Email,
		Roles:         roles,
		SessionID:     res.SessionID,
		SessionExpiry: res.SessionExpiry,
	})
}
