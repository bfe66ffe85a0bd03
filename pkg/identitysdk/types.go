package identitysdk

import "time"

// ErrorResponse is the uniform JSON error body returned by every endpoint.
type ErrorResponse struct {
	// Error is a short machine-readable code (e.g. "invalid_request",
	// "not_found", "conflict", "server_error")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`

	// Details contains field-specific validation messages, when present
	Details []string `json:"details,omitempty"`
}

// LoginRequest carries the credentials for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned for every login attempt, success or failure.
// On failure only Success and Message are populated; the message never
// distinguishes an unknown email from a wrong password.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Populated on success only.
	UserID        string    `json:"user_id,omitempty"`
	Email         string    `json:"email,omitempty"`
	Roles         []string  `json:"roles,omitempty"`
	SessionID     string    `json:"session_id,omitempty"`
	SessionExpiry time.Time `json:"session_expiry,omitzero"`
}

// ChangePasswordRequest carries the payload for POST /v1/auth/change-password.
type ChangePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SessionResponse describes a validated session.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public shape of an account. The password hash is
// never serialized.
type UserResponse struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	Roles                 []string  `json:"roles"`
	Enabled               bool      `json:"enabled"`
	AccountNonExpired     bool      `json:"account_non_expired"`
	AccountNonLocked      bool      `json:"account_non_locked"`
	CredentialsNonExpired bool      `json:"credentials_non_expired"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CreateUserRequest carries the payload for POST /v1/users.
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

// UpdateUserRequest carries the payload for PUT /v1/users/{id}. Boolean
// pointers distinguish "leave unchanged" from an explicit false.
type UpdateUserRequest struct {
	Email                 *string  `json:"email,omitempty"`
	Roles                 []string `json:"roles,omitempty"`
	Enabled               *bool    `json:"enabled,omitempty"`
	AccountNonExpired     *bool    `json:"account_non_expired,omitempty"`
	AccountNonLocked      *bool    `json:"account_non_locked,omitempty"`
	CredentialsNonExpired *bool    `json:"credentials_non_expired,omitempty"`
}

// UsersResponse wraps a list of accounts.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// ExistsResponse reports whether an email is already registered.
type ExistsResponse struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}

// StatsResponse summarizes the account population.
type StatsResponse struct {
	TotalUsers int64 `json:"total_users"`
	AdminUsers int64 `json:"admin_users"`
	PlainUsers int64 `json:"plain_users"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
