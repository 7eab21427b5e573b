package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// UserRepo encapsulates all database queries related to users and their
// recent searched cities.  Users are never created through a signup
// endpoint; UpsertByExternalID is called once per authenticated request
// by the identity resolver middleware.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// UpsertByExternalID resolves an external identity id to exactly one user
// record, creating it with the default guest role on first sight.  The
// insert is idempotent: `ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`
// makes LastInsertId return the existing row's id when the external id is
// already known, so concurrent first requests from the same identity
// cannot create two rows.  Name and email claims are captured when the
// provider supplies them and the stored values are still empty.
func (r *UserRepo) UpsertByExternalID(ctx context.Context, externalID, name, email string) (*model.User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrUserNotFound
	}
	const qUpsert = `INSERT INTO users (external_id, name, email, role)
	                 VALUES (?, ?, ?, ?)
	                 ON DUPLICATE KEY UPDATE
	                   id = LAST_INSERT_ID(id),
	                   name = IF(name = '', VALUES(name), name),
	                   email = IF(email = '', VALUES(email), email)`
	res, err := r.db.ExecContext(ctx, qUpsert, externalID, name, email, model.RoleGuest)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a user by primary key.  It returns ErrUserNotFound when
// no row exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, external_id, name, email, role, created_at, updated_at
	           FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateRole sets the role column for a user.  It returns ErrUserNotFound
// when no row was affected.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	const q = `UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RecentCities returns the user's recent searched cities, newest first.
func (r *UserRepo) RecentCities(ctx context.Context, userID uint64) ([]string, error) {
	const q = `SELECT city FROM user_recent_cities WHERE user_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		out = append(out, city)
	}
	return out, rows.Err()
}

// PushRecentCity records a searched city for the user and evicts the
// oldest entries beyond the newest three.  Both statements run in one
// transaction so a concurrent push cannot observe more than three rows
// after commit.
func (r *UserRepo) PushRecentCity(ctx context.Context, userID uint64, city string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_recent_cities (user_id, city) VALUES (?, ?)`,
		userID, city); err != nil {
		return err
	}
	// MySQL cannot delete from a table referenced in a subquery directly;
	// the extra derived table works around that restriction.
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM user_recent_cities WHERE user_id = ? AND id NOT IN (
		   SELECT id FROM (
		     SELECT id FROM user_recent_cities WHERE user_id = ? ORDER BY id DESC LIMIT 3
		   ) keep
		 )`, userID, userID); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}
