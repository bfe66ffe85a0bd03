package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/internal/identity/store"
	"github.com/authapp/identity/pkg/cryptox"
	"github.com/authapp/identity/pkg/idx"
	"github.com/authapp/identity/pkg/slogx"
)

var ErrSeedFailed = errors.New("failed to seed initial accounts")

// SeedAccount describes one account created on first boot.
type SeedAccount struct {
	Email    string
	Password string
	Roles    []domain.Role
}

// DefaultSeedAccounts are the development accounts created when the store is
// empty and no explicit seed set is configured.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{Email: "admin@example.com", Password: "admin123", Roles: []domain.Role{domain.RoleAdmin}},
		{Email: "user@example.com", Password: "user123", Roles: []domain.Role{domain.RoleUser}},
	}
}

// BootstrapService seeds the initial accounts so a fresh deployment is
// immediately usable. Seeding is a no-op once any account exists.
type BootstrapService struct {
	Store    store.Store
	Accounts []SeedAccount
}

// IsSeeded reports whether at least one account already exists.
func (s *BootstrapService) IsSeeded(ctx context.Context) (bool, error) {
	total, err := s.Store.Users().CountTotal(ctx)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// Seed creates the configured accounts inside one transaction. Passwords are
// hashed before the transaction starts; the clear text is never stored.
func (s *BootstrapService) Seed(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	seeded, err := s.IsSeeded(ctx)
	if err != nil {
		l.Error("failed to check for existing accounts", slog.Any("error", err))
		return ErrSeedFailed
	}
	if seeded {
		l.Debug("accounts already present, skipping seed")
		return nil
	}

	accounts := s.Accounts
	if len(accounts) == 0 {
		accounts = DefaultSeedAccounts()
	}

	users := make([]domain.User, 0, len(accounts))
	now := time.Now().UTC()
	for _, acc := range accounts {
		hash, err := cryptox.HashPassword(acc.Password)
		if err != nil {
			l.Error("failed to hash seed password",
				slog.String("email", acc.Email),
				slog.Any("error", err),
			)
			return ErrSeedFailed
		}

		u := domain.NewUser(acc.Email, hash)
		if len(acc.Roles) > 0 {
			u.Roles = append([]domain.Role(nil), acc.Roles...)
		}
		u.ID = idx.New()
		u.CreatedAt = now
		u.UpdatedAt = now
		users = append(users, *u)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for i := range users {
			if err := tx.Users().Create(ctx, &users[i]); err != nil {
				l.Error("failed to create seed account",
					slog.String("email", users[i].Email),
					slog.Any("error", err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ErrSeedFailed
	}

	for _, u := range users {
		l.Info("seeded account",
			slog.String("email", u.Email),
			slog.String("user_id", u.ID.String()),
		)
	}
	return nil
}
