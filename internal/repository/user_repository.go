package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// UserRepo provides read access to operator accounts.  User CRUD is
// owned by the surrounding administration tool; the engine only needs
// credential lookup for the login boundary.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// GetByEmail retrieves an active user by email.  Returns
// ErrUserNotFound when no active account matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, email, password_hash, role, is_active, created_at
	           FROM users WHERE email = ? AND is_active = 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
