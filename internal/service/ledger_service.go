package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradetracker/internal/domain"
)

// LedgerService manages a user's trades and deposits.
// Every operation is scoped to ownerID; records of other users behave as
// if they did not exist.
type LedgerService struct {
	tradeRepo   domain.TradeRepository
	depositRepo domain.DepositRepository
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	tradeRepo domain.TradeRepository,
	depositRepo domain.DepositRepository,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		tradeRepo:   tradeRepo,
		depositRepo: depositRepo,
		log:         log.With().Str("component", "ledger").Logger(),
	}
}

// CreateTrade validates the input, computes metrics and stores the trade
func (s *LedgerService) CreateTrade(ctx context.Context, ownerID uuid.UUID, in domain.TradeInput) (*domain.Trade, error) {
	trade, err := domain.NewTrade(ownerID, in)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("user_id", ownerID.String()).
		Str("trade_id", trade.ID.String()).
		Str("symbol", trade.Symbol).
		Str("status", trade.Status()).
		Msg("Trade created")
	return trade, nil
}

// ListTrades returns all trades of the owner, newest entry first
func (s *LedgerService) ListTrades(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trade, error) {
	return s.tradeRepo.ListByUser(ctx, ownerID)
}

// GetTrade returns one trade of the owner
func (s *LedgerService) GetTrade(ctx context.Context, ownerID, tradeID uuid.UUID) (*domain.Trade, error) {
	return s.tradeRepo.GetForUser(ctx, tradeID, ownerID)
}

// UpdateTrade applies a partial update and recomputes every derived field
// in the same transaction. Clearing exit_price reopens a closed trade.
func (s *LedgerService) UpdateTrade(ctx context.Context, ownerID, tradeID uuid.UUID, patch domain.TradePatch) (*domain.Trade, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var reopened bool
	trade, err := s.tradeRepo.UpdateForUser(ctx, tradeID, ownerID, func(t *domain.Trade) error {
		wasOpen := t.IsOpen()

		patch.ApplyTo(t)
		if err := t.Validate(); err != nil {
			return err
		}
		if err := t.RecalculateMetrics(); err != nil {
			return err
		}

		reopened = !wasOpen && t.IsOpen()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reopened {
		s.log.Info().
			Str("user_id", ownerID.String()).
			Str("trade_id", tradeID.String()).
			Msg("Trade reopened by clearing exit price")
	}
	return trade, nil
}

// DeleteTrade permanently removes a trade of the owner
func (s *LedgerService) DeleteTrade(ctx context.Context, ownerID, tradeID uuid.UUID) error {
	return s.tradeRepo.DeleteForUser(ctx, tradeID, ownerID)
}

// CreateDeposit validates and stores a deposit
func (s *LedgerService) CreateDeposit(ctx context.Context, ownerID uuid.UUID, in domain.DepositInput) (*domain.Deposit, error) {
	deposit, err := domain.NewDeposit(ownerID, in)
	if err != nil {
		return nil, err
	}

	if err := s.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// ListDeposits returns all deposits of the owner, most recent first
func (s *LedgerService) ListDeposits(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deposit, error) {
	return s.depositRepo.ListByUser(ctx, ownerID)
}

// DeleteDeposit permanently removes a deposit of the owner
func (s *LedgerService) DeleteDeposit(ctx context.Context, ownerID, depositID uuid.UUID) error {
	return s.depositRepo.DeleteForUser(ctx, depositID, ownerID)
}
