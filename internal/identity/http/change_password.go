package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/identitysdk"
)

// ChangePasswordHandler handles POST /v1/auth/change-password.
type ChangePasswordHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Change an account password
//	@Description	Verifies the current password and atomically stores the new hash.
//	@Description	Every session of the account is revoked on success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.ChangePasswordRequest	true	"Email with current and new password"
//	@Success		200		{object}	identitysdk.MessageResponse
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description, details"
//	@Failure		401		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/change-password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	err := h.AuthService.ChangePassword(r.Context(), req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		// Unknown email, wrong current password, and a disabled account all
		// get the same response so callers cannot enumerate accounts.
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrInvalidCredentials) ||
			errors.Is(err, domain.ErrAccountDisabled) {
			httpx.WriteJSON(w, http.StatusUnauthorized, identitysdk.ErrorResponse{
				Error:            "invalid_credentials",
				ErrorDescription: "Invalid email or password",
			})
			return
		}
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{Message: "Password changed"})
}
