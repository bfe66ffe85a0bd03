package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/internal/identity/metrics"
	"github.com/authapp/identity/internal/identity/store"
	"github.com/authapp/identity/pkg/cryptox"
	"github.com/authapp/identity/pkg/httpx"
	"github.com/authapp/identity/pkg/idx"
	"github.com/authapp/identity/pkg/slogx"
)

// DefaultSessionTTL bounds a session's lifetime when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// FailureReason is the precise internal outcome of a failed login. It is
// tracked for logging and tests; the outward message deliberately collapses
// user_not_found and password_mismatch into one.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonUserNotFound       FailureReason = "user_not_found"
	ReasonPasswordMismatch   FailureReason = "password_mismatch"
	ReasonAccountDisabled    FailureReason = "account_disabled"
	ReasonAccountExpired     FailureReason = "account_expired"
	ReasonAccountLocked      FailureReason = "account_locked"
	ReasonCredentialsExpired FailureReason = "credentials_expired"
	ReasonStorageError       FailureReason = "storage_error"
)

// Outward login messages. Unknown email and wrong password MUST produce the
// same text so callers cannot enumerate accounts.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgAccountDisabled    = "Account is disabled"
	MsgAccountExpired     = "Account is expired"
	MsgAccountLocked      = "Account is locked"
	MsgCredentialsExpired = "Credentials have expired"
	MsgLoginOK            = "Login successful"
	MsgServerError        = "Login failed due to server error"
)

// LoginResult is the terminal state of one login attempt. Failure modes are
// enumerable through Reason rather than hidden behind a caught exception.
type LoginResult struct {
	Success bool
	Message string

	// Populated on success only.
	UserID        idx.ID
	Email         string
	Roles         []domain.Role
	Enabled       bool
	SessionID     string // opaque handle; never persisted in clear
	SessionExpiry time.Time

	// Reason is the internal failure classification. Never expose it to
	// callers outside the core.
	Reason FailureReason
}

// AuthService verifies credentials and manages the session lifecycle.
// It owns no HTTP concerns.
type AuthService struct {
	Store      store.Store
	SessionTTL time.Duration
}

func NewAuthService(st store.Store, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{Store: st, SessionTTL: sessionTTL}
}

// Login runs the credential state machine:
//
//	lookup -> status flags -> verify password -> issue session
//
// Every non-success branch terminates with a uniform failure result; storage
// faults are converted to a generic server-error result so callers never see
// a partially applied mutation.
func (s *AuthService) Login(ctx context.Context, email, password string) *LoginResult {
	l := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return s.fail(l, email, ReasonUserNotFound, MsgInvalidCredentials)
	}

	u, err := s.Store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.fail(l, email, ReasonUserNotFound, MsgInvalidCredentials)
		}
		l.Error("login: user lookup failed", slog.Any("error", err))
		return s.fail(l, email, ReasonStorageError, MsgServerError)
	}

	if reason, msg, ok := checkAccountStatus(u); !ok {
		return s.fail(l, email, reason, msg)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return s.fail(l, email, ReasonPasswordMismatch, MsgInvalidCredentials)
	}

	handle, session, err := s.issueSession(ctx, u.ID)
	if err != nil {
		l.Error("login: session issuance failed", slog.Any("error", err))
		return s.fail(l, email, ReasonStorageError, MsgServerError)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()
	l.Info("login successful", "user_id", u.ID.String())

	return &LoginResult{
		Success:       true,
		Message:       MsgLoginOK,
		UserID:        u.ID,
		Email:         u.Email,
		Roles:         u.Roles,
		Enabled:       u.Enabled,
		SessionID:     handle,
		SessionExpiry: session.ExpiresAt,
	}
}

// checkAccountStatus walks the status-flag branches of the login state
// machine. Each flag is its own terminal failure.
func checkAccountStatus(u domain.User) (FailureReason, string, bool) {
	switch {
	case !u.Enabled:
		return ReasonAccountDisabled, MsgAccountDisabled, false
	case !u.AccountNonExpired:
		return ReasonAccountExpired, MsgAccountExpired, false
	case !u.AccountNonLocked:
		return ReasonAccountLocked, MsgAccountLocked, false
	case !u.CredentialsNonExpired:
		return ReasonCredentialsExpired, MsgCredentialsExpired, false
	}
	return ReasonNone, "", true
}

func (s *AuthService) fail(l *slog.Logger, email string, reason FailureReason, msg string) *LoginResult {
	metrics.LoginAttemptsTotal.WithLabelValues(string(reason)).Inc()
	l.Warn("login failed", "email", email, "reason", string(reason))
	return &LoginResult{Success: false, Message: msg, Reason: reason}
}

// issueSession mints an opaque handle, stores its fingerprint, and returns
// both the handle and the persisted record.
func (s *AuthService) issueSession(ctx context.Context, userID idx.ID) (string, domain.Session, error) {
	handle, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(handle),
		ExpiresAt: now.Add(s.SessionTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Sessions().Create(ctx, session); err != nil {
		return "", domain.Session{}, err
	}
	return handle, session, nil
}

// ChangePassword verifies the current password and atomically stores the new
// hash while revoking every session of the account. Failure modes are typed:
// ValidationError, ErrNotFound, ErrAccountDisabled, ErrInvalidCredentials, or
// a StorageError.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.ErrNotFound
			}
			return &domain.StorageError{Op: "find by email", Err: err}
		}

		if !u.Enabled {
			return domain.ErrAccountDisabled
		}

		if err := cryptox.VerifyPassword(currentPassword, u.PasswordHash); err != nil {
			return domain.ErrInvalidCredentials
		}

		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		u.PasswordHash = hash
		u.UpdatedAt = time.Now().UTC()
		if err := tx.Users().Update(ctx, &u); err != nil {
			return &domain.StorageError{Op: "update password", Err: err}
		}

		// A changed password invalidates every outstanding session.
		if err := tx.Sessions().RevokeAllForUser(ctx, u.ID); err != nil {
			return &domain.StorageError{Op: "revoke sessions", Err: err}
		}
		return nil
	})
	if err != nil {
		l.Warn("password change failed", "email", email, "err", err)
		return err
	}

	metrics.SessionsRevokedTotal.WithLabelValues("password_change").Inc()
	l.Info("password changed", "email", email)
	return nil
}

// ValidateSession resolves an opaque handle to its persisted session.
// Unknown, expired, and revoked handles all yield domain.ErrSessionInvalid.
func (s *AuthService) ValidateSession(ctx context.Context, handle string) (domain.Session, error) {
	if handle == "" {
		return domain.Session{}, domain.ErrSessionInvalid
	}

	session, err := s.Store.Sessions().FindByTokenHash(ctx, cryptox.FingerprintToken(handle))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, domain.ErrSessionInvalid
		}
		return domain.Session{}, &domain.StorageError{Op: "find session", Err: err}
	}

	if !session.Active(time.Now().UTC()) {
		return domain.Session{}, domain.ErrSessionInvalid
	}
	return session, nil
}

// Logout revokes the session behind the handle. Revoking an unknown or
// already-revoked handle succeeds; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}

	if err := s.Store.Sessions().Revoke(ctx, cryptox.FingerprintToken(handle)); err != nil {
		return &domain.StorageError{Op: "revoke session", Err: err}
	}

	metrics.SessionsRevokedTotal.WithLabelValues("logout").Inc()
	slogx.FromContext(ctx).Info("session revoked")
	return nil
}

// AuthenticateSession implements httpx.SessionAuthenticator: it validates the
// handle and resolves the principal behind it. A disabled account invalidates
// its sessions immediately.
func (s *AuthService) AuthenticateSession(ctx context.Context, handle string) (httpx.Principal, error) {
	session, err := s.ValidateSession(ctx, handle)
	if err != nil {
		return httpx.Principal{}, err
	}

	u, err := s.Store.Users().FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Principal{}, domain.ErrSessionInvalid
		}
		return httpx.Principal{}, &domain.StorageError{Op: "find by id", Err: err}
	}
	if !u.Enabled {
		return httpx.Principal{}, domain.ErrSessionInvalid
	}

	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.String())
	}

	return httpx.Principal{
		UserID:    u.ID.String(),
		Roles:     roles,
		SessionID: session.ID.String(),
	}, nil
}
