package service

import (
	"context"
	"testing"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/internal/identity/store"
	"github.com/authapp/identity/pkg/cryptox"
	"github.com/authapp/identity/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (store.Store, *UserService, *AuthService) {
	t.Helper()
	st := newTestStore(t)
	return st, &UserService{Store: st}, NewAuthService(st, 0)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	_, users, auth := newAuthFixture(t)

	_, err := users.CreateUser(ctx, CreateUserParams{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("success issues a session", func(t *testing.T) {
		res := auth.Login(ctx, "alice@example.com", "correct-horse")
		require.True(t, res.Success)
		require.Equal(t, MsgLoginOK, res.Message)
		require.Equal(t, "alice@example.com", res.Email)
		require.Equal(t, []domain.Role{domain.RoleUser}, res.Roles)
		require.True(t, res.Enabled)
		require.NotEmpty(t, res.SessionID)
		require.True(t, res.SessionExpiry.After(time.Now()))

		session, err := auth.ValidateSession(ctx, res.SessionID)
		require.NoError(t, err)
		require.Equal(t, res.UserID, session.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		res := auth.Login(ctx, "alice@example.com", "wrong-pass")
		require.False(t, res.Success)
		require.Equal(t, MsgInvalidCredentials, res.Message)
		require.Equal(t, ReasonPasswordMismatch, res.Reason)
		require.Empty(t, res.SessionID)
	})

	t.Run("unknown email yields the same message", func(t *testing.T) {
		res := auth.Login(ctx, "nobody@example.com", "whatever")
		require.False(t, res.Success)
		require.Equal(t, MsgInvalidCredentials, res.Message)
		require.Equal(t, ReasonUserNotFound, res.Reason)
	})

	t.Run("empty input short-circuits", func(t *testing.T) {
		res := auth.Login(ctx, "", "")
		require.False(t, res.Success)
		require.Equal(t, MsgInvalidCredentials, res.Message)
	})
}

func TestLoginStatusFlags(t *testing.T) {
	ctx := context.Background()
	_, users, auth := newAuthFixture(t)

	cases := []struct {
		name    string
		email   string
		mutate  func(u *domain.User)
		message string
		reason  FailureReason
	}{
		{
			name:    "disabled account",
			email:   "disabled@example.com",
			mutate:  func(u *domain.User) { u.Enabled = false },
			message: MsgAccountDisabled,
			reason:  ReasonAccountDisabled,
		},
		{
			name:    "expired account",
			email:   "expired@example.com",
			mutate:  func(u *domain.User) { u.AccountNonExpired = false },
			message: MsgAccountExpired,
			reason:  ReasonAccountExpired,
		},
		{
			name:    "locked account",
			email:   "locked@example.com",
			mutate:  func(u *domain.User) { u.AccountNonLocked = false },
			message: MsgAccountLocked,
			reason:  ReasonAccountLocked,
		},
		{
			name:    "expired credentials",
			email:   "stale@example.com",
			mutate:  func(u *domain.User) { u.CredentialsNonExpired = false },
			message: MsgCredentialsExpired,
			reason:  ReasonCredentialsExpired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := users.CreateUser(ctx, CreateUserParams{
				Email:    tc.email,
				Password: "correct-horse",
			})
			require.NoError(t, err)

			tc.mutate(created)
			_, err = users.UpdateUser(ctx, created)
			require.NoError(t, err)

			res := auth.Login(ctx, tc.email, "correct-horse")
			require.False(t, res.Success)
			require.Equal(t, tc.message, res.Message)
			require.Equal(t, tc.reason, res.Reason)
			require.Empty(t, res.SessionID)
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st, users, auth := newAuthFixture(t)

	created, err := users.CreateUser(ctx, CreateUserParams{
		Email:    "bob@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("logout revokes the session", func(t *testing.T) {
		res := auth.Login(ctx, "bob@example.com", "correct-horse")
		require.True(t, res.Success)

		require.NoError(t, auth.Logout(ctx, res.SessionID))

		_, err := auth.ValidateSession(ctx, res.SessionID)
		require.ErrorIs(t, err, domain.ErrSessionInvalid)

		// Logging out twice is fine.
		require.NoError(t, auth.Logout(ctx, res.SessionID))
	})

	t.Run("unknown handle is invalid", func(t *testing.T) {
		_, err := auth.ValidateSession(ctx, "not-a-real-handle")
		require.ErrorIs(t, err, domain.ErrSessionInvalid)

		_, err = auth.ValidateSession(ctx, "")
		require.ErrorIs(t, err, domain.ErrSessionInvalid)
	})

	t.Run("expired session is invalid", func(t *testing.T) {
		handle, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		past := time.Now().UTC().Add(-time.Hour)
		require.NoError(t, st.Sessions().Create(ctx, domain.Session{
			ID:        idx.New(),
			UserID:    created.ID,
			TokenHash: cryptox.FingerprintToken(handle),
			ExpiresAt: past,
			CreatedAt: past.Add(-DefaultSessionTTL),
			UpdatedAt: past.Add(-DefaultSessionTTL),
		}))

		_, err = auth.ValidateSession(ctx, handle)
		require.ErrorIs(t, err, domain.ErrSessionInvalid)
	})

	t.Run("authenticate resolves the principal", func(t *testing.T) {
		res := auth.Login(ctx, "bob@example.com", "correct-horse")
		require.True(t, res.Success)

		p, err := auth.AuthenticateSession(ctx, res.SessionID)
		require.NoError(t, err)
		require.Equal(t, created.ID.String(), p.UserID)
		require.Equal(t, []string{"USER"}, p.Roles)
		require.NotEmpty(t, p.SessionID)
	})

	t.Run("disabling the account invalidates its sessions", func(t *testing.T) {
		res := auth.Login(ctx, "bob@example.com", "correct-horse")
		require.True(t, res.Success)

		u, err := users.FindByID(ctx, created.ID)
		require.NoError(t, err)
		u.Enabled = false
		_, err = users.UpdateUser(ctx, &u)
		require.NoError(t, err)

		_, err = auth.AuthenticateSession(ctx, res.SessionID)
		require.ErrorIs(t, err, domain.ErrSessionInvalid)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	_, users, auth := newAuthFixture(t)

	_, err := users.CreateUser(ctx, CreateUserParams{
		Email:    "carol@example.com",
		Password: "old-password",
	})
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := auth.ChangePassword(ctx, "carol@example.com", "bad-guess", "new-password")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)

		res := auth.Login(ctx, "carol@example.com", "old-password")
		require.True(t, res.Success)
	})

	t.Run("unknown account", func(t *testing.T) {
		err := auth.ChangePassword(ctx, "nobody@example.com", "old-password", "new-password")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("new password too short", func(t *testing.T) {
		err := auth.ChangePassword(ctx, "carol@example.com", "old-password", "short")
		require.True(t, domain.IsValidation(err))
	})

	t.Run("success rotates the hash and revokes sessions", func(t *testing.T) {
		res := auth.Login(ctx, "carol@example.com", "old-password")
		require.True(t, res.Success)

		require.NoError(t, auth.ChangePassword(ctx, "carol@example.com", "old-password", "new-password"))

		// The pre-change session no longer validates.
		_, err := auth.ValidateSession(ctx, res.SessionID)
		require.ErrorIs(t, err, domain.ErrSessionInvalid)

		// Old credentials no longer work, new ones do.
		require.Equal(t, MsgInvalidCredentials, auth.Login(ctx, "carol@example.com", "old-password").Message)
		require.True(t, auth.Login(ctx, "carol@example.com", "new-password").Success)
	})

	t.Run("disabled account cannot change its password", func(t *testing.T) {
		_, err := users.CreateUser(ctx, CreateUserParams{
			Email:    "frozen@example.com",
			Password: "old-password",
			Disabled: true,
		})
		require.NoError(t, err)

		err = auth.ChangePassword(ctx, "frozen@example.com", "old-password", "new-password")
		require.ErrorIs(t, err, domain.ErrAccountDisabled)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	st, users, auth := newAuthFixture(t)
	boot := &BootstrapService{Store: st}

	require.NoError(t, boot.Seed(ctx))

	t.Run("creates the two default accounts once", func(t *testing.T) {
		total, err := users.TotalUserCount(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)

		admins, err := users.UserCountByRole(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.EqualValues(t, 1, admins)

		plain, err := users.UserCountByRole(ctx, domain.RoleUser)
		require.NoError(t, err)
		require.EqualValues(t, 1, plain)

		// Seeding again is a no-op.
		require.NoError(t, boot.Seed(ctx))
		total, err = users.TotalUserCount(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
	})

	t.Run("seeded credentials log in", func(t *testing.T) {
		res := auth.Login(ctx, "admin@example.com", "admin123")
		require.True(t, res.Success)
		require.Equal(t, []domain.Role{domain.RoleAdmin}, res.Roles)

		res = auth.Login(ctx, "user@example.com", "user123")
		require.True(t, res.Success)
		require.Equal(t, []domain.Role{domain.RoleUser}, res.Roles)

		res = auth.Login(ctx, "admin@example.com", "user123")
		require.False(t, res.Success)
		require.Equal(t, MsgInvalidCredentials, res.Message)
	})

	t.Run("stored hashes are not the clear text", func(t *testing.T) {
		u, err := users.FindByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.NotEqual(t, "admin123", u.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("admin123", u.PasswordHash))
	})
}

func TestHousekeeping(t *testing.T) {
	ctx := context.Background()
	st, users, auth := newAuthFixture(t)

	created, err := users.CreateUser(ctx, CreateUserParams{
		Email:    "sweep@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// One live session and one long-expired session.
	res := auth.Login(ctx, "sweep@example.com", "correct-horse")
	require.True(t, res.Success)

	past := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, st.Sessions().Create(ctx, domain.Session{
		ID:        idx.New(),
		UserID:    created.ID,
		TokenHash: cryptox.FingerprintToken("stale-handle"),
		ExpiresAt: past,
		CreatedAt: past,
		UpdatedAt: past,
	}))

	require.NoError(t, st.Sessions().DeleteExpired(ctx))

	active, err := st.Sessions().CountActive(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 1, active)

	// The live session survived the sweep.
	_, err = auth.ValidateSession(ctx, res.SessionID)
	require.NoError(t, err)
}
