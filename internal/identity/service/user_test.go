package service

import (
	"context"
	"testing"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/pkg/cryptox"
	"github.com/authapp/identity/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	t.Run("assigns defaults and hashes the password", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, CreateUserParams{
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		require.False(t, u.ID.IsZero())
		require.Equal(t, "alice@example.com", u.Email)
		require.Equal(t, []domain.Role{domain.RoleUser}, u.Roles)
		require.True(t, u.Enabled)
		require.True(t, u.AccountNonExpired)
		require.True(t, u.AccountNonLocked)
		require.True(t, u.CredentialsNonExpired)

		require.NotEqual(t, "s3cret-pass", u.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("s3cret-pass", u.PasswordHash))

		got, err := svc.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			Email:    "alice@example.com",
			Password: "another-pass",
		})
		require.ErrorIs(t, err, domain.ErrEmailTaken)

		// The original account is untouched.
		got, err := svc.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("s3cret-pass", got.PasswordHash))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			Email:    "not-an-email",
			Password: "s3cret-pass",
		})
		require.True(t, domain.IsValidation(err))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			Email:    "bob@example.com",
			Password: "12345",
		})
		require.True(t, domain.IsValidation(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			Email:    "bob@example.com",
			Password: "s3cret-pass",
			Roles:    []domain.Role{"SUPERUSER"},
		})
		require.True(t, domain.IsValidation(err))
	})

	t.Run("honors explicit roles and disabled flag", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, CreateUserParams{
			Email:    "ops@example.com",
			Password: "s3cret-pass",
			Roles:    []domain.Role{domain.RoleAdmin, domain.RoleUser},
			Disabled: true,
		})
		require.NoError(t, err)
		require.False(t, u.Enabled)
		require.True(t, u.HasRole(domain.RoleAdmin))
		require.True(t, u.HasRole(domain.RoleUser))
	})
}

func TestFindUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	created, err := svc.CreateUser(ctx, CreateUserParams{
		Email:    "carol@example.com",
		Password: "carol-pass",
	})
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		got, err := svc.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.Email, got.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.FindByID(ctx, idx.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.FindByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("email is case-sensitive", func(t *testing.T) {
		_, err := svc.FindByEmail(ctx, "CAROL@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	created, err := svc.CreateUser(ctx, CreateUserParams{
		Email:    "dave@example.com",
		Password: "dave-pass",
	})
	require.NoError(t, err)

	t.Run("updates flags and roles", func(t *testing.T) {
		u := *created
		u.AccountNonLocked = false
		u.AddRole(domain.RoleAdmin)

		updated, err := svc.UpdateUser(ctx, &u)
		require.NoError(t, err)
		require.False(t, updated.AccountNonLocked)
		require.True(t, updated.HasRole(domain.RoleAdmin))
		require.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
		require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

		got, err := svc.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.False(t, got.AccountNonLocked)
		require.True(t, got.HasRole(domain.RoleAdmin))
	})

	t.Run("unknown id", func(t *testing.T) {
		u := *created
		u.ID = idx.New()
		_, err := svc.UpdateUser(ctx, &u)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	created, err := svc.CreateUser(ctx, CreateUserParams{
		Email:    "erin@example.com",
		Password: "erin-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	_, err = svc.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting twice reports not found.
	require.ErrorIs(t, svc.DeleteUser(ctx, created.ID), domain.ErrNotFound)
}

func TestUserQueries(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	seed := []CreateUserParams{
		{Email: "admin@example.com", Password: "admin-pass", Roles: []domain.Role{domain.RoleAdmin}},
		{Email: "frank@example.com", Password: "frank-pass"},
		{Email: "grace@example.com", Password: "grace-pass"},
	}
	for _, p := range seed {
		_, err := svc.CreateUser(ctx, p)
		require.NoError(t, err)
	}

	t.Run("counts", func(t *testing.T) {
		total, err := svc.TotalUserCount(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 3, total)

		admins, err := svc.UserCountByRole(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.EqualValues(t, 1, admins)

		plain, err := svc.UserCountByRole(ctx, domain.RoleUser)
		require.NoError(t, err)
		require.EqualValues(t, 2, plain)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := svc.ExistsByEmail(ctx, "frank@example.com")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("find all", func(t *testing.T) {
		all, err := svc.FindAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
	})

	t.Run("find by role", func(t *testing.T) {
		admins, err := svc.FindByRole(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.Len(t, admins, 1)
		require.Equal(t, "admin@example.com", admins[0].Email)
	})

	t.Run("search by email fragment", func(t *testing.T) {
		got, err := svc.SearchUsersByEmail(ctx, "RAN")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "frank@example.com", got[0].Email)

		got, err = svc.SearchUsersByEmail(ctx, "example.com")
		require.NoError(t, err)
		require.Len(t, got, 3)
	})
}
