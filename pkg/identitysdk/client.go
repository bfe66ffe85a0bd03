package identitysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small Go client for the identity service. The zero value is
// not usable; construct it with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// sessionID is the opaque handle attached to authenticated requests.
	sessionID string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a non-2xx response decoded into the uniform error body.
type APIError struct {
	StatusCode int
	Body       ErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Body.Error, e.Body.ErrorDescription, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Body.Error, e.StatusCode)
}

// Login authenticates and, on success, stores the session handle for
// subsequent authenticated calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Success {
		c.sessionID = out.SessionID
	}
	return &out, nil
}

// Logout revokes the current session handle, if any.
func (c *Client) Logout(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	c.sessionID = ""
	return err
}

// ValidateSession checks the current handle against the service.
func (c *Client) ValidateSession(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/auth/session", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the password of the given account. All sessions of
// the account are revoked on success, including this client's.
func (c *Client) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	req := ChangePasswordRequest{
		Email:           email,
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/change-password", req, nil); err != nil {
		return err
	}
	c.sessionID = ""
	return nil
}

// CreateUser registers a new account. Requires an admin session.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/v1/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches one account by id. Requires an admin session.
func (c *Client) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches all accounts. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) (*UsersResponse, error) {
	var out UsersResponse
	if err := c.do(ctx, http.MethodGet, "/v1/users", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchUsers fetches accounts whose email contains term. Requires an admin
// session.
func (c *Client) SearchUsers(ctx context.Context, term string) (*UsersResponse, error) {
	var out UsersResponse
	path := "/v1/users/search?email=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to an account. Requires an admin
// session.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account. Requires an admin session.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil, nil)
}

// EmailExists reports whether an email is registered. Requires an admin
// session.
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	var out ExistsResponse
	path := "/v1/users/exists?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// Stats fetches account population counts. Requires an admin session.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/users/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionID exposes the stored handle so callers can persist it.
func (c *Client) SessionID() string { return c.sessionID }

// SetSessionID resumes a previously issued handle.
func (c *Client) SetSessionID(handle string) { c.sessionID = handle }

// do performs one request/response cycle. A nil out discards the body;
// non-2xx statuses decode into an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+c.sessionID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
