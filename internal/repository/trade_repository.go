package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradetracker/internal/domain"
)

const tradeColumns = `
	id, user_id, symbol, entry_date, exit_date, entry_price, exit_price,
	shares, brokerage_fee, notes, total_cost, profit_loss, profit_loss_percent,
	created_at`

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Create inserts a new trade
func (r *TradeRepositoryImpl) Create(ctx context.Context, trade *domain.Trade) error {
	query := `
		INSERT INTO trades (` + tradeColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err := r.db.Exec(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Symbol,
		trade.EntryDate,
		trade.ExitDate,
		trade.EntryPrice,
		trade.ExitPrice,
		trade.Shares,
		trade.BrokerageFee,
		trade.Notes,
		trade.TotalCost,
		trade.ProfitLoss,
		trade.ProfitLossPercent,
		trade.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}

	return nil
}

// ListByUser retrieves all trades for a user
func (r *TradeRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades by user ID: %w", err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// GetForUser retrieves a trade by ID, scoped to its owner
func (r *TradeRepositoryImpl) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE id = $1 AND user_id = $2
	`

	trade, err := scanTrade(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get trade %s: %w", id, err)
	}

	return trade, nil
}

// UpdateForUser runs read, mutate and write of one trade inside a transaction
func (r *TradeRepositoryImpl) UpdateForUser(ctx context.Context, id, userID uuid.UUID, mutate domain.TradeMutation) (*domain.Trade, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin trade update: %w", err)
	}
	// No-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	trade, err := scanTrade(tx.QueryRow(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get trade %s: %w", id, err)
	}

	if err := mutate(trade); err != nil {
		return nil, err
	}
	trade.ID, trade.UserID = id, userID

	query := `
		UPDATE trades
		SET symbol = $1, entry_date = $2, exit_date = $3, entry_price = $4,
		    exit_price = $5, shares = $6, brokerage_fee = $7, notes = $8,
		    total_cost = $9, profit_loss = $10, profit_loss_percent = $11
		WHERE id = $12 AND user_id = $13
	`

	tag, err := tx.Exec(ctx, query,
		trade.Symbol,
		trade.EntryDate,
		trade.ExitDate,
		trade.EntryPrice,
		trade.ExitPrice,
		trade.Shares,
		trade.BrokerageFee,
		trade.Notes,
		trade.TotalCost,
		trade.ProfitLoss,
		trade.ProfitLossPercent,
		id,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("failed to update trade %s: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trade update: %w", err)
	}

	return trade, nil
}

// DeleteForUser removes a trade owned by userID
func (r *TradeRepositoryImpl) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trades WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	trade := &domain.Trade{}
	err := row.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Symbol,
		&trade.EntryDate,
		&trade.ExitDate,
		&trade.EntryPrice,
		&trade.ExitPrice,
		&trade.Shares,
		&trade.BrokerageFee,
		&trade.Notes,
		&trade.TotalCost,
		&trade.ProfitLoss,
		&trade.ProfitLossPercent,
		&trade.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return trade, nil
}
