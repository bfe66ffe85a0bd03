package sqlite

import (
	"context"
	"time"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/pkg/idx"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, token_hash, expires_at, revoked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(), s.UserID.String(), s.TokenHash, s.ExpiresAt, s.Revoked,
		s.CreatedAt, s.UpdatedAt)
	return mapConstraint(err)
}

func (r *sessionsRepo) FindByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	var s domain.Session
	var id, userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked, created_at, updated_at
		 FROM sessions WHERE token_hash = ?`, hash).
		Scan(&id, &userID, &s.TokenHash, &s.ExpiresAt, &s.Revoked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.ID = idx.ID(id)
	s.UserID = idx.ID(userID)
	return s, nil
}

func (r *sessionsRepo) Revoke(ctx context.Context, hash string) error {
	// Revoking an unknown or already-revoked handle is a no-op; logout must
	// stay idempotent.
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1, updated_at = ? WHERE token_hash = ? AND revoked = 0`,
		time.Now().UTC(), hash)
	return err
}

func (r *sessionsRepo) RevokeAllForUser(ctx context.Context, userID idx.ID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1, updated_at = ? WHERE user_id = ? AND revoked = 0`,
		time.Now().UTC(), userID.String())
	return err
}

func (r *sessionsRepo) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sessions WHERE revoked = 0 AND expires_at > ?`, now).Scan(&n)
	return n, err
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
