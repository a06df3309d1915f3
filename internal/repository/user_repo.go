package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trading_dashboard/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, full_name, password_hash, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectUserColumns    = `SELECT id, username, email, full_name, password_hash, is_active, created_at FROM users`
	selectUserByUsername = selectUserColumns + ` WHERE username = ?`
	selectUserByEmail    = selectUserColumns + ` WHERE email = ?`
)

// Create inserts a new user and returns its ID. UNIQUE violations come back as *DuplicateError.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Email, u.FullName, u.PasswordHash, true, createdAt.UTC())
	if err != nil {
		if dup := asDuplicate(err); dup != nil {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, dup)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by exact username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByUsername, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByEmail fetches a user by exact email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByEmail, email))
	if err != nil {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
