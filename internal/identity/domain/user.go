package domain

import (
	"time"

	"github.com/authapp/identity/pkg/idx"
)

// Field-shape bounds enforced at input acceptance, before any store access.
const (
	EmailMaxLen    = 100
	PasswordMinLen = 6
	PasswordMaxLen = 120
)

// User represents one account. An instance with a zero ID is transient;
// once the store assigns an ID it never changes.
type User struct {
	ID           idx.ID `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // argon2id PHC encoded

	// Roles is a set: mutate it only through AddRole/RemoveRole.
	Roles []Role `json:"roles"`

	// Account-status flags. Each gates its own failure branch during login.
	Enabled               bool `json:"enabled"`
	AccountNonExpired     bool `json:"account_non_expired"`
	AccountNonLocked      bool `json:"account_non_locked"`
	CredentialsNonExpired bool `json:"credentials_non_expired"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser returns a transient account with the default USER role and all
// status flags enabled. The password hash must already be computed.
func NewUser(email, passwordHash string) *User {
	u := newAccount(email, passwordHash)
	u.AddRole(RoleUser)
	return u
}

// NewAdmin is like NewUser but assigns the ADMIN role.
func NewAdmin(email, passwordHash string) *User {
	u := newAccount(email, passwordHash)
	u.AddRole(RoleAdmin)
	return u
}

func newAccount(email, passwordHash string) *User {
	return &User{
		Email:                 email,
		PasswordHash:          passwordHash,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
}

// HasRole reports set membership.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// AddRole adds r to the role set. Adding a role that is already present is a
// no-op, not an error.
func (u *User) AddRole(r Role) {
	if u.HasRole(r) {
		return
	}
	u.Roles = append(u.Roles, r)
}

// RemoveRole removes r from the role set. Removing an absent role is a no-op.
func (u *User) RemoveRole(r Role) {
	for i, have := range u.Roles {
		if have == r {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return
		}
	}
}

// Persisted reports whether the store has assigned an identity.
func (u *User) Persisted() bool { return !u.ID.IsZero() }
