package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/authapp/identity/internal/identity/domain"
	"github.com/authapp/identity/pkg/idx"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, enabled, account_non_expired,
	account_non_locked, credentials_non_expired, created_at, updated_at`

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUserWithRoles(ctx, row)
}

func (r *usersRepo) FindByID(ctx context.Context, id idx.ID) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id.String())
	return r.scanUserWithRoles(ctx, row)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return r.collectUsers(ctx, rows)
}

func (r *usersRepo) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE id IN (SELECT user_id FROM user_roles WHERE role = ?)
		 ORDER BY created_at, id`, role.String())
	if err != nil {
		return nil, err
	}
	return r.collectUsers(ctx, rows)
}

// likeEscaper neutralizes LIKE metacharacters so a search term only ever
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *usersRepo) SearchByEmail(ctx context.Context, term string) ([]domain.User, error) {
	// LIKE is case-insensitive for ASCII in SQLite; lowering both sides keeps
	// the contract explicit.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE LOWER(email) LIKE '%' || LOWER(?) || '%' ESCAPE '\'
		 ORDER BY created_at, id`, likeEscaper.Replace(term))
	if err != nil {
		return nil, err
	}
	return r.collectUsers(ctx, rows)
}

func (r *usersRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, enabled, account_non_expired,
			account_non_locked, credentials_non_expired, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Email, u.PasswordHash, u.Enabled, u.AccountNonExpired,
		u.AccountNonLocked, u.CredentialsNonExpired, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return mapConstraint(err)
	}
	return r.insertRoles(ctx, u.ID, u.Roles)
}

func (r *usersRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, password_hash = ?, enabled = ?,
			account_non_expired = ?, account_non_locked = ?,
			credentials_non_expired = ?, updated_at = ?
		 WHERE id = ?`,
		u.Email, u.PasswordHash, u.Enabled, u.AccountNonExpired,
		u.AccountNonLocked, u.CredentialsNonExpired, u.UpdatedAt, u.ID.String())
	if err != nil {
		return mapConstraint(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}

	// Snapshot semantics: the persisted role set becomes exactly u.Roles.
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_id = ?`, u.ID.String()); err != nil {
		return err
	}
	return r.insertRoles(ctx, u.ID, u.Roles)
}

func (r *usersRepo) DeleteByID(ctx context.Context, id idx.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *usersRepo) CountTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM user_roles WHERE role = ?`, role.String()).Scan(&n)
	return n, err
}

func (r *usersRepo) insertRoles(ctx context.Context, userID idx.ID, roles []domain.Role) error {
	for _, role := range roles {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES (?, ?)`,
			userID.String(), role.String()); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *usersRepo) scanUserWithRoles(ctx context.Context, row *sql.Row) (domain.User, error) {
	var u domain.User
	var id string
	err := row.Scan(&id, &u.Email, &u.PasswordHash, &u.Enabled, &u.AccountNonExpired,
		&u.AccountNonLocked, &u.CredentialsNonExpired, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.ID = idx.ID(id)

	roles, err := r.loadRoles(ctx, []idx.ID{u.ID})
	if err != nil {
		return domain.User{}, err
	}
	u.Roles = roles[u.ID]
	return u, nil
}

func (r *usersRepo) collectUsers(ctx context.Context, rows *sql.Rows) ([]domain.User, error) {
	defer rows.Close()

	var users []domain.User
	var ids []idx.ID
	for rows.Next() {
		var u domain.User
		var id string
		err := rows.Scan(&id, &u.Email, &u.PasswordHash, &u.Enabled, &u.AccountNonExpired,
			&u.AccountNonLocked, &u.CredentialsNonExpired, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		u.ID = idx.ID(id)
		users = append(users, u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles, err := r.loadRoles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Roles = roles[users[i].ID]
	}
	return users, nil
}

// loadRoles fetches the role sets for the given account ids in one query.
func (r *usersRepo) loadRoles(ctx context.Context, ids []idx.ID) (map[idx.ID][]domain.Role, error) {
	out := make(map[idx.ID][]domain.Role, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, role FROM user_roles WHERE user_id IN (`+placeholders+`) ORDER BY role`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID, role string
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, err
		}
		out[idx.ID(userID)] = append(out[idx.ID(userID)], domain.Role(role))
	}
	return out, rows.Err()
}
