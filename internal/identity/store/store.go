package store

import (
	"context"
	"errors"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and a
// transaction scope for multi-step operations that must be atomic.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns nil
	// and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the account repository. The unique index on email is the
// authoritative uniqueness guard: Create returns ErrAlreadyExists when it
// fires, regardless of any advisory pre-check the caller ran.
type Users interface {
	// FindByEmail returns the account with the exact (case-sensitive) email.
	FindByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmail is the advisory fast path used before creation.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByID returns an account by id.
	FindByID(ctx context.Context, id idx.ID) (domain.User, error)

	// FindAll returns every account, oldest first.
	FindAll(ctx context.Context) ([]domain.User, error)

	// FindByRole returns all accounts holding the given role.
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// Create inserts a new account together with its role set.
	// The caller provides id and timestamps.
	Create(ctx context.Context, u *domain.User) error

	// Update persists the given snapshot (fields and role set) as-is.
	Update(ctx context.Context, u *domain.User) error

	// DeleteByID removes the account. Sessions and roles cascade per schema.
	DeleteByID(ctx context.Context, id idx.ID) error

	// CountTotal returns the number of accounts.
	CountTotal(ctx context.Context) (int64, error)

	// CountByRole returns the number of accounts holding the given role.
	CountByRole(ctx context.Context, role domain.Role) (int64, error)

	// SearchByEmail returns accounts whose email contains term,
	// case-insensitively.
	SearchByEmail(ctx context.Context, term string) ([]domain.User, error)
}

// Sessions stores issued session records keyed by handle fingerprint.
type Sessions interface {
	// Create stores a freshly issued session.
	Create(ctx context.Context, s domain.Session) error

	// FindByTokenHash returns the session for a handle fingerprint.
	FindByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// Revoke marks the session revoked and bumps updated_at. Unknown hashes
	// are not an error; logout is idempotent.
	Revoke(ctx context.Context, hash string) error

	// RevokeAllForUser bulk-revokes every session of an account
	// (password change).
	RevokeAllForUser(ctx context.Context, userID idx.ID) error

	// CountActive returns the number of unrevoked, unexpired sessions.
	CountActive(ctx context.Context, now time.Time) (int64, error)

	// DeleteExpired is housekeeping.
	DeleteExpired(ctx context.Context) error
}
