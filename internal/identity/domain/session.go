package domain

import (
	"time"

	"github.com/authapp/identity/pkg/idx"
)

// Session is a bounded-lifetime authenticated context. The opaque handle
// returned to the caller is never stored; only its SHA-256 fingerprint is.
type Session struct {
	ID        idx.ID
	UserID    idx.ID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the session is usable at the given instant.
func (s Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
