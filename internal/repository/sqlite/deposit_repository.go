package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tradetracker/internal/domain"
)

// DepositRepository implements domain.DepositRepository on SQLite
type DepositRepository struct {
	db *sql.DB
}

// NewDepositRepository creates a new DepositRepository
func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// Create inserts a new deposit
func (r *DepositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deposits (id, user_id, amount, deposit_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		deposit.ID,
		deposit.UserID,
		deposit.Amount,
		formatDate(deposit.DepositDate),
		deposit.Notes,
		formatTimestamp(deposit.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save deposit: %w", err)
	}
	return nil
}

// ListByUser retrieves all deposits for a user, most recent first
func (r *DepositRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, amount, deposit_date, notes, created_at
		FROM deposits
		WHERE user_id = ?
		ORDER BY deposit_date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits by user ID: %w", err)
	}
	defer rows.Close()

	deposits := make([]*domain.Deposit, 0)
	for rows.Next() {
		var (
			deposit     domain.Deposit
			depositDate string
			createdAt   string
		)
		if err := rows.Scan(
			&deposit.ID,
			&deposit.UserID,
			&deposit.Amount,
			&depositDate,
			&deposit.Notes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		if deposit.DepositDate, err = parseDate(depositDate); err != nil {
			return nil, fmt.Errorf("invalid deposit_date: %w", err)
		}
		if deposit.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at: %w", err)
		}
		deposits = append(deposits, &deposit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits: %w", err)
	}
	return deposits, nil
}

// DeleteForUser removes a deposit owned by userID
func (r *DepositRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deposits WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete deposit %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
