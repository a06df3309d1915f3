package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trading_dashboard/internal/models"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

var _ Clients = (*ClientRepository)(nil)

const (
	selectClientsByUserSQL = `SELECT id, user_id, full_name, api_key, api_token, created_at, updated_at FROM clients WHERE user_id = ? ORDER BY id ASC`
	selectClientSQL        = `SELECT id, user_id, full_name, api_key, api_token, created_at, updated_at FROM clients WHERE id = ? AND user_id = ?`
	insertClientSQL        = `INSERT INTO clients (user_id, full_name, api_key, api_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	updateClientSQL        = `UPDATE clients SET full_name = ?, api_key = ?, api_token = ?, updated_at = ? WHERE id = ? AND user_id = ?`
	deleteClientSQL        = `DELETE FROM clients WHERE id = ? AND user_id = ?`
)

func (r *ClientRepository) ListByUser(ctx context.Context, userID int) ([]models.Client, error) {
	rows, err := r.db.QueryContext(ctx, selectClientsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select clients for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Client, 0)
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.FullName, &c.APIKey, &c.APIToken, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}

// Create inserts c and returns it with ID and timestamps set.
func (r *ClientRepository) Create(ctx context.Context, c models.Client) (models.Client, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertClientSQL, c.UserID, c.FullName, c.APIKey, c.APIToken, now, now)
	if err != nil {
		return models.Client{}, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Client{}, fmt.Errorf("get last insert id for client: %w", err)
	}
	c.ID = int(id)
	c.CreatedAt, c.UpdatedAt = now, now
	return c, nil
}

// Update overwrites the mutable fields of a client owned by c.UserID.
func (r *ClientRepository) Update(ctx context.Context, c models.Client) (models.Client, error) {
	res, err := r.db.ExecContext(ctx, updateClientSQL, c.FullName, c.APIKey, c.APIToken, time.Now().UTC(), c.ID, c.UserID)
	if err != nil {
		return models.Client{}, fmt.Errorf("update client %d: %w", c.ID, err)
	}
	if err := requireAffected(res); err != nil {
		return models.Client{}, fmt.Errorf("update client %d: %w", c.ID, err)
	}

	var out models.Client
	err = r.db.QueryRowContext(ctx, selectClientSQL, c.ID, c.UserID).
		Scan(&out.ID, &out.UserID, &out.FullName, &out.APIKey, &out.APIToken, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, ErrNotFound
		}
		return models.Client{}, fmt.Errorf("select client %d: %w", c.ID, err)
	}
	return out, nil
}

func (r *ClientRepository) Delete(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteClientSQL, id, userID)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

// requireAffected maps a zero-row result to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
