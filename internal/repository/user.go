package repository

import (
	"context"
	"fmt"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo represents user repository.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new regular user and returns its generated id.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(username, password_hash, phone, is_admin) VALUES($1,$2,$3,FALSE) RETURNING id`,
		u.Username, u.PasswordHash, u.Phone).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return id, nil
}

// GetByUsername returns a user by username, or nil if no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, phone, is_admin FROM users WHERE username=$1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Phone, &u.Admin)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}

// EnsureAdmin inserts the default admin account if no user named "admin"
// exists. An existing row is left untouched (insert-or-ignore).
func (r *UserRepo) EnsureAdmin(ctx context.Context, passwordHash, phone string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users(username, password_hash, phone, is_admin)
        VALUES('admin', $1, $2, TRUE)
        ON CONFLICT (username) DO NOTHING
    `, passwordHash, phone)
	if err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}
	return nil
}
