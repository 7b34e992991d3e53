package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tradetracker/internal/domain"
)

const tradeColumns = `
	id, user_id, symbol, entry_date, exit_date, entry_price, exit_price,
	shares, brokerage_fee, notes, total_cost, profit_loss, profit_loss_percent,
	created_at`

// TradeRepository implements domain.TradeRepository on SQLite
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a new trade
func (r *TradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trade.ID,
		trade.UserID,
		trade.Symbol,
		formatDate(trade.EntryDate),
		formatDatePtr(trade.ExitDate),
		trade.EntryPrice,
		trade.ExitPrice,
		trade.Shares,
		trade.BrokerageFee,
		trade.Notes,
		trade.TotalCost,
		trade.ProfitLoss,
		trade.ProfitLossPercent,
		formatTimestamp(trade.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

// ListByUser retrieves all trades for a user
func (r *TradeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE user_id = ?
		ORDER BY entry_date DESC, created_at DESC
	`, userID)
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
func (r *TradeRepository) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Trade, error) {
	trade, err := scanTrade(r.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE id = ? AND user_id = ?
	`, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get trade %s: %w", id, err)
	}
	return trade, nil
}

// UpdateForUser runs read, mutate and write of one trade inside a transaction
func (r *TradeRepository) UpdateForUser(ctx context.Context, id, userID uuid.UUID, mutate domain.TradeMutation) (*domain.Trade, error) {
	var updated *domain.Trade

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		trade, err := scanTrade(tx.QueryRowContext(ctx, `
			SELECT `+tradeColumns+` FROM trades WHERE id = ? AND user_id = ?
		`, id, userID))
		if err != nil {
			return fmt.Errorf("failed to get trade %s: %w", id, err)
		}

		if err := mutate(trade); err != nil {
			return err
		}
		trade.ID, trade.UserID = id, userID

		res, err := tx.ExecContext(ctx, `
			UPDATE trades
			SET symbol = ?, entry_date = ?, exit_date = ?, entry_price = ?,
			    exit_price = ?, shares = ?, brokerage_fee = ?, notes = ?,
			    total_cost = ?, profit_loss = ?, profit_loss_percent = ?
			WHERE id = ? AND user_id = ?
		`,
			trade.Symbol,
			formatDate(trade.EntryDate),
			formatDatePtr(trade.ExitDate),
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
			return fmt.Errorf("failed to update trade: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("failed to update trade %s: %w", id, domain.ErrNotFound)
		}

		updated = trade
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteForUser removes a trade owned by userID
func (r *TradeRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTrade(row rowScanner) (*domain.Trade, error) {
	var (
		trade     domain.Trade
		entryDate string
		exitDate  sql.NullString
		createdAt string
	)
	err := row.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Symbol,
		&entryDate,
		&exitDate,
		&trade.EntryPrice,
		&trade.ExitPrice,
		&trade.Shares,
		&trade.BrokerageFee,
		&trade.Notes,
		&trade.TotalCost,
		&trade.ProfitLoss,
		&trade.ProfitLossPercent,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if trade.EntryDate, err = parseDate(entryDate); err != nil {
		return nil, fmt.Errorf("invalid entry_date: %w", err)
	}
	if trade.ExitDate, err = parseDatePtr(exitDate); err != nil {
		return nil, fmt.Errorf("invalid exit_date: %w", err)
	}
	if trade.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	return &trade, nil
}
