package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trading_dashboard/internal/models"
)

type PasswordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

var _ PasswordResets = (*PasswordResetRepository)(nil)

const (
	insertResetSQL = `INSERT INTO password_resets (email, reset_token, expires_at, is_used, created_at) VALUES (?, ?, ?, ?, ?)`

	selectResetByTokenSQL = `SELECT id, email, reset_token, expires_at, is_used, created_at FROM password_resets WHERE reset_token = ?`

	updatePasswordByEmailSQL = `UPDATE users SET password_hash = ? WHERE email = ?`

	// is_used = 0 guards against two redemptions racing on the same row.
	markResetUsedSQL = `UPDATE password_resets SET is_used = 1 WHERE id = ? AND is_used = 0`
)

// Create stores a new, unused reset request.
func (r *PasswordResetRepository) Create(ctx context.Context, pr models.PasswordReset) (int, error) {
	createdAt := pr.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertResetSQL, pr.Email, pr.ResetToken, pr.ExpiresAt.UTC(), false, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert password reset: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for password reset: %w", err)
	}
	return int(lastID), nil
}

// Redeem consumes a redeemable token and stores newHash for its user.
// Nothing is written unless both updates succeed.
func (r *PasswordResetRepository) Redeem(ctx context.Context, token string, now time.Time, newHash string) (*models.PasswordReset, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin redeem transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var pr models.PasswordReset
	err = tx.QueryRowContext(ctx, selectResetByTokenSQL, token).
		Scan(&pr.ID, &pr.Email, &pr.ResetToken, &pr.ExpiresAt, &pr.IsUsed, &pr.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("select password reset: %w", err)
	}
	if !pr.Redeemable(now) {
		return nil, ErrResetTokenInvalid
	}

	res, err := tx.ExecContext(ctx, updatePasswordByEmailSQL, newHash, pr.Email)
	if err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("update password rows: %w", err)
	} else if n == 0 {
		return nil, ErrResetUserMissing
	}

	res, err = tx.ExecContext(ctx, markResetUsedSQL, pr.ID)
	if err != nil {
		return nil, fmt.Errorf("mark reset used: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("mark reset used rows: %w", err)
	} else if n == 0 {
		return nil, ErrResetTokenInvalid
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit redeem transaction: %w", err)
	}
	pr.IsUsed = true
	return &pr, nil
}
