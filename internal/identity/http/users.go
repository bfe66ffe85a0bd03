package http

import (
	"encoding/json"
	"net/http"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/internal/identity/service"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/identitysdk"
	"github.com/authapp/identity/pkg/idx"
	"github.com/authapp/identity/pkg/slogx"
)

// UsersHandler handles all account management endpoints. Every route is
// gated behind an admin session by the router.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Create an account
//	@Description	Registers a new account with a hashed password. Roles default to USER
//	@Description	when omitted.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		SessionAuth
//	@Param			request	body		identitysdk.CreateUserRequest	true	"Account details"
//	@Success		201		{object}	identitysdk.UserResponse
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description, details"
//	@Failure		409		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	roles, err := parseRoles(req.Roles)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	u, err := h.UserService.CreateUser(r.Context(), service.CreateUserParams{
		Email:    req.Email,
		Password: req.Password,
		Roles:    roles,
		Disabled: req.Disabled,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(*u))
}

// HandleList handles GET /v1/users
//
//	@Summary		List accounts
//	@Description	Returns all accounts, optionally filtered by role via ?role=ADMIN.
//	@Tags			Users
//	@Produce		json
//	@Security		SessionAuth
//	@Param			role	query		string	false	"Filter by role (USER or ADMIN)"
//	@Success		200		{object}	identitysdk.UsersResponse
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		users []domain.User
		err   error
	)
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, perr := domain.ParseRole(raw)
		if perr != nil {
			writeBadRequest(w, "Unknown role "+raw)
			return
		}
		users, err = h.UserService.FindByRole(ctx, role)
	} else {
		users, err = h.UserService.FindAllUsers(ctx)
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "error", err)
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUsersResponse(users))
}

// HandleGet handles GET /v1/users/{id}
//
//	@Summary		Fetch one account
//	@Tags			Users
//	@Produce		json
//	@Security		SessionAuth
//	@Param			id	path		string	true	"Account id"
//	@Success		200	{object}	identitysdk.UserResponse
//	@Failure		404	{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, domain.ErrNotFound)
		return
	}

	u, err := h.UserService.FindByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdate handles PUT /v1/users/{id}
//
//	@Summary		Update an account
//	@Description	Applies a partial update to email, roles, or status flags. Omitted
//	@Description	fields keep their stored value; the last write wins.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		SessionAuth
//	@Param			id		path		string						true	"Account id"
//	@Param			request	body		identitysdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	identitysdk.UserResponse
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description, details"
//	@Failure		404		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, domain.ErrNotFound)
		return
	}

	var req identitysdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	ctx := r.Context()
	u, err := h.UserService.FindByID(ctx, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Roles != nil {
		roles, perr := parseRoles(req.Roles)
		if perr != nil {
			writeDomainError(w, perr)
			return
		}
		u.Roles = roles
	}
	if req.Enabled != nil {
		u.Enabled = *req.Enabled
	}
	if req.AccountNonExpired != nil {
		u.AccountNonExpired = *req.AccountNonExpired
	}
	if req.AccountNonLocked != nil {
		u.AccountNonLocked = *req.AccountNonLocked
	}
	if req.CredentialsNonExpired != nil {
		u.CredentialsNonExpired = *req.CredentialsNonExpired
	}

	updated, err := h.UserService.UpdateUser(ctx, &u)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(*updated))
}

// HandleDelete handles DELETE /v1/users/{id}
//
//	@Summary		Delete an account
//	@Description	Irreversibly removes the account; its sessions go with it.
//	@Tags			Users
//	@Produce		json
//	@Security		SessionAuth
//	@Param			id	path		string	true	"Account id"
//	@Success		200	{object}	identitysdk.MessageResponse
//	@Failure		404	{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, domain.ErrNotFound)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{Message: "Account deleted"})
}

// HandleSearch handles GET /v1/users/search
//
//	@Summary		Search accounts by email fragment
//	@Tags			Users
//	@Produce		json
//	@Security		SessionAuth
//	@Param			email	query		string	true	"Case-insensitive email fragment"
//	@Success		200		{object}	identitysdk.UsersResponse
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/search [get].
func (h *UsersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("email")
	if term == "" {
		writeBadRequest(w, "Query parameter 'email' is required")
		return
	}

	users, err := h.UserService.SearchUsersByEmail(r.Context(), term)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUsersResponse(users))
}

// HandleExists handles GET /v1/users/exists
//
//	@Summary		Check whether an email is registered
//	@Tags			Users
//	@Produce		json
//	@Security		SessionAuth
//	@Param			email	query		string	true	"Exact email"
//	@Success		200		{object}	identitysdk.ExistsResponse
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/exists [get].
func (h *UsersHandler) HandleExists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeBadRequest(w, "Query parameter 'email' is required")
		return
	}

	exists, err := h.UserService.ExistsByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.ExistsResponse{
		Email:  email,
		Exists: exists,
	})
}

// HandleStats handles GET /v1/users/stats
//
//	@Summary		Account population counts
//	@Tags			Users
//	@Produce		json
//	@Security		SessionAuth
//	@Success		200	{object}	identitysdk.StatsResponse
//	@Router			/v1/users/stats [get].
func (h *UsersHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.UserService.TotalUserCount(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	admins, err := h.UserService.UserCountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	plain, err := h.UserService.UserCountByRole(ctx, domain.RoleUser)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.StatsResponse{
		TotalUsers: total,
		AdminUsers: admins,
		PlainUsers: plain,
	})
}

func parseRoles(raw []string) ([]domain.Role, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	roles := make([]domain.Role, 0, len(raw))
	for _, s := range raw {
		role, err := domain.ParseRole(s)
		if err != nil {
			return nil, domain.NewValidationError("unknown role " + s)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func toUserResponse(u domain.User) identitysdk.UserResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, role.String())
	}
	return identitysdk.UserResponse{
		ID:                    u.ID.String(),
		Email:                 u.Email,
		Roles:                 roles,
		Enabled:               u.Enabled,
		AccountNonExpired:     u.AccountNonExpired,
		AccountNonLocked:      u.AccountNonLocked,
		CredentialsNonExpired: u.CredentialsNonExpired,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func toUsersResponse(users []domain.User) identitysdk.UsersResponse {
	out := identitysdk.UsersResponse{
		Users: make([]identitysdk.UserResponse, 0, len(users)),
		Count: len(users),
	}
	for _, u := range users {
		out.Users = append(out.Users, toUserResponse(u))
	}
	return out
}
