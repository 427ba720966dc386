package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crop_forecast/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, name, email, phone, password_hash) VALUES (?, ?, ?, ?, ?)`

	selectUserByUsernameSQL = `SELECT username, name, email, phone, password_hash FROM users WHERE username = ?`

	existsUserByEmailSQL = `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`
)

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	if _, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Name, u.Email, u.Phone, u.PasswordHash); err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, selectUserByUsernameSQL, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// ExistsByEmail reports whether any user already registered the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, existsUserByEmailSQL, email); err != nil {
		return false, fmt.Errorf("check email %q: %w", email, err)
	}
	return exists, nil
}
