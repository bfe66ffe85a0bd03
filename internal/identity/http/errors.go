package http

import (
	"errors"
	"net/http"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/identitysdk"
)

// writeDomainError maps a service error onto the wire. Storage faults are
// collapsed into an opaque 500 so internals never leak.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		httpx.WriteJSON(w, http.StatusBadRequest, identitysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Request validation failed",
			Details:          ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		httpx.WriteJSON(w, http.StatusConflict, identitysdk.ErrorResponse{
			Error:            "conflict",
			ErrorDescription: "Email is already registered",
		})
	case errors.Is(err, domain.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, identitysdk.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "Resource not found",
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, identitysdk.ErrorResponse{
			Error:            "invalid_credentials",
			ErrorDescription: "Current password is incorrect",
		})
	case errors.Is(err, domain.ErrAccountDisabled):
		httpx.WriteJSON(w, http.StatusForbidden, identitysdk.ErrorResponse{
			Error:            "account_disabled",
			ErrorDescription: "Account is disabled",
		})
	case errors.Is(err, domain.ErrSessionInvalid):
		httpx.WriteJSON(w, http.StatusUnauthorized, identitysdk.ErrorResponse{
			Error:            "invalid_session",
			ErrorDescription: "Session is invalid or expired",
		})
	default:
		httpx.WriteJSON(w, http.StatusInternalServerError, identitysdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "An internal error occurred",
		})
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, identitysdk.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: desc,
	})
}
