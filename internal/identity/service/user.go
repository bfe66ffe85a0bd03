package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/internal/identity/metrics"
	"github.com/authapp/identity/internal/identity/store"
	"github.com/authapp/identity/pkg/cryptox"
	"github.com/authapp/identity/pkg/idx"
	"github.com/authapp/identity/pkg/slogx"
)

// UserService is the single source of truth for account lifecycle operations.
// Business invariants (uniqueness, existence) live here; field-shape
// validation runs before any store access.
type UserService struct {
	Store store.Store
}

// CreateUserParams describes a new account. When Roles is empty the default
// USER role is assigned.
type CreateUserParams struct {
	Email    string
	Password string
	Roles    []domain.Role
	Disabled bool
}

// CreateUser validates, hashes the password, and persists a new account.
// A duplicate email fails with domain.ErrEmailTaken whether it is caught by
// the advisory pre-check or by the store's unique constraint; the constraint
// is the authoritative guard under concurrent creation.
func (s *UserService) CreateUser(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := validateAccountInput(p.Email, p.Password); err != nil {
		return nil, err
	}
	for _, r := range p.Roles {
		if !r.Valid() {
			return nil, domain.NewValidationError(fmt.Sprintf("unknown role %q", r))
		}
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := domain.NewUser(p.Email, hash)
	if len(p.Roles) > 0 {
		u.Roles = nil
		for _, r := range p.Roles {
			u.AddRole(r)
		}
	}
	if p.Disabled {
		u.Enabled = false
	}

	now := time.Now().UTC()
	u.ID = idx.New()
	u.CreatedAt = now
	u.UpdatedAt = now

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Advisory fast path; the unique index catches the race.
		exists, err := tx.Users().ExistsByEmail(ctx, u.Email)
		if err != nil {
			return &domain.StorageError{Op: "exists by email", Err: err}
		}
		if exists {
			return domain.ErrEmailTaken
		}

		if err := tx.Users().Create(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrEmailTaken
			}
			return &domain.StorageError{Op: "create user", Err: err}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.AccountOperationsTotal.WithLabelValues("create", "conflict").Inc()
			l.Info("create user rejected: email taken", "email", u.Email)
		} else {
			metrics.AccountOperationsTotal.WithLabelValues("create", "error").Inc()
		}
		return nil, err
	}

	metrics.AccountOperationsTotal.WithLabelValues("create", "ok").Inc()
	l.Info("user created", "user_id", u.ID.String())
	return u, nil
}

// FindByEmail returns the account with the exact email, or domain.ErrNotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, &domain.StorageError{Op: "find by email", Err: err}
	}
	return u, nil
}

// FindByID returns the account with the given id, or domain.ErrNotFound.
func (s *UserService) FindByID(ctx context.Context, id idx.ID) (domain.User, error) {
	u, err := s.Store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, &domain.StorageError{Op: "find by id", Err: err}
	}
	return u, nil
}

// FindAllUsers returns every account. The admin surface is bounded, so no
// pagination.
func (s *UserService) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().FindAll(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "find all users", Err: err}
	}
	return users, nil
}

// FindByRole returns all accounts holding the given role.
func (s *UserService) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := s.Store.Users().FindByRole(ctx, role)
	if err != nil {
		return nil, &domain.StorageError{Op: "find by role", Err: err}
	}
	return users, nil
}

// UpdateUser persists the given snapshot last-write-wins. The account must
// already exist; there is no optimistic-concurrency check.
func (s *UserService) UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	l := slogx.FromContext(ctx)

	if u.ID.IsZero() {
		return nil, domain.NewValidationError("id is required")
	}
	if err := validateEmail(u.Email); err != nil {
		return nil, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().FindByID(ctx, u.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.ErrNotFound
			}
			return &domain.StorageError{Op: "find by id", Err: err}
		}

		u.CreatedAt = existing.CreatedAt
		u.UpdatedAt = time.Now().UTC()

		if err := tx.Users().Update(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrEmailTaken
			}
			return &domain.StorageError{Op: "update user", Err: err}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AccountOperationsTotal.WithLabelValues("update", "not_found").Inc()
		} else {
			metrics.AccountOperationsTotal.WithLabelValues("update", "error").Inc()
		}
		return nil, err
	}

	metrics.AccountOperationsTotal.WithLabelValues("update", "ok").Inc()
	l.Info("user updated", "user_id", u.ID.String())
	return u, nil
}

// DeleteUser removes an account by id. Irreversible; sessions and role rows
// cascade in the store.
func (s *UserService) DeleteUser(ctx context.Context, id idx.ID) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Users().DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AccountOperationsTotal.WithLabelValues("delete", "not_found").Inc()
			return domain.ErrNotFound
		}
		metrics.AccountOperationsTotal.WithLabelValues("delete", "error").Inc()
		return &domain.StorageError{Op: "delete user", Err: err}
	}

	metrics.AccountOperationsTotal.WithLabelValues("delete", "ok").Inc()
	l.Info("user deleted", "user_id", id.String())
	return nil
}

// ExistsByEmail reports whether an account with the email exists.
func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.Store.Users().ExistsByEmail(ctx, email)
	if err != nil {
		return false, &domain.StorageError{Op: "exists by email", Err: err}
	}
	return exists, nil
}

// TotalUserCount returns the number of accounts.
func (s *UserService) TotalUserCount(ctx context.Context) (int64, error) {
	n, err := s.Store.Users().CountTotal(ctx)
	if err != nil {
		return 0, &domain.StorageError{Op: "count users", Err: err}
	}
	return n, nil
}

// UserCountByRole returns the number of accounts holding the given role.
func (s *UserService) UserCountByRole(ctx context.Context, role domain.Role) (int64, error) {
	n, err := s.Store.Users().CountByRole(ctx, role)
	if err != nil {
		return 0, &domain.StorageError{Op: "count users by role", Err: err}
	}
	return n, nil
}

// SearchUsersByEmail returns accounts whose email contains term,
// case-insensitively.
func (s *UserService) SearchUsersByEmail(ctx context.Context, term string) ([]domain.User, error) {
	users, err := s.Store.Users().SearchByEmail(ctx, term)
	if err != nil {
		return nil, &domain.StorageError{Op: "search users", Err: err}
	}
	return users, nil
}
