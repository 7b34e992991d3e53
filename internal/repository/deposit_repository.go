package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradetracker/internal/domain"
)

// DepositRepositoryImpl implements the DepositRepository interface
type DepositRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository
func NewDepositRepository(db *pgxpool.Pool) domain.DepositRepository {
	return &DepositRepositoryImpl{db: db}
}

// Create inserts a new deposit
func (r *DepositRepositoryImpl) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, user_id, amount, deposit_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		deposit.ID,
		deposit.UserID,
		deposit.Amount,
		deposit.DepositDate,
		deposit.Notes,
		deposit.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save deposit: %w", err)
	}

	return nil
}

// ListByUser retrieves all deposits for a user, most recent first
func (r *DepositRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deposit, error) {
	query := `
		SELECT id, user_id, amount, deposit_date, notes, created_at
		FROM deposits
		WHERE user_id = $1
		ORDER BY deposit_date DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits by user ID: %w", err)
	}
	defer rows.Close()

	deposits := make([]*domain.Deposit, 0)
	for rows.Next() {
		deposit := &domain.Deposit{}
		err := rows.Scan(
			&deposit.ID,
			&deposit.UserID,
			&deposit.Amount,
			&deposit.DepositDate,
			&deposit.Notes,
			&deposit.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits: %w", err)
	}

	return deposits, nil
}

// DeleteForUser removes a deposit owned by userID
func (r *DepositRepositoryImpl) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM deposits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete deposit %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
