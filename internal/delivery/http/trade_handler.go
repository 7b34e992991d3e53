package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"tradetracker/internal/delivery/http/dto"
	"tradetracker/internal/domain"
	"tradetracker/internal/middleware"
)

const tradeNotFound = "Trade not found"

// TradeLedger is the trade side of the ledger service
type TradeLedger interface {
	CreateTrade(ctx context.Context, ownerID uuid.UUID, in domain.TradeInput) (*domain.Trade, error)
	ListTrades(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trade, error)
	GetTrade(ctx context.Context, ownerID, tradeID uuid.UUID) (*domain.Trade, error)
	UpdateTrade(ctx context.Context, ownerID, tradeID uuid.UUID, patch domain.TradePatch) (*domain.Trade, error)
	DeleteTrade(ctx context.Context, ownerID, tradeID uuid.UUID) error
}

// TradeHandler handles trade requests of the authenticated user
type TradeHandler struct {
	ledger TradeLedger
	log    zerolog.Logger
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(ledger TradeLedger, log zerolog.Logger) *TradeHandler {
	return &TradeHandler{
		ledger: ledger,
		log:    log.With().Str("component", "trade_handler").Logger(),
	}
}

// List returns the user's trades
// GET /api/trades
func (h *TradeHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trades, err := h.ledger.ListTrades(ctx, userID)
	if err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	return SuccessResponse(c, dto.NewTradeOutputs(trades))
}

// Create records a new trade
// POST /api/trades
func (h *TradeHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	in, err := req.ToInput()
	if err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, err := h.ledger.CreateTrade(ctx, userID, in)
	if err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	return CreatedResponse(c, dto.NewTradeOutput(trade))
}

// Get returns one trade
// GET /api/trades/:id
func (h *TradeHandler) Get(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NotFoundResponse(c, tradeNotFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, err := h.ledger.GetTrade(ctx, userID, tradeID)
	if err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	return SuccessResponse(c, dto.NewTradeOutput(trade))
}

// Update applies a partial update to a trade
// PUT /api/trades/:id, PATCH /api/trades/:id
func (h *TradeHandler) Update(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NotFoundResponse(c, tradeNotFound)
	}

	var req dto.UpdateTradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	patch, err := req.ToPatch()
	if err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, err := h.ledger.UpdateTrade(ctx, userID, tradeID, patch)
	if err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	return SuccessResponse(c, dto.NewTradeOutput(trade))
}

// Delete removes a trade
// DELETE /api/trades/:id
func (h *TradeHandler) Delete(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NotFoundResponse(c, tradeNotFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.ledger.DeleteTrade(ctx, userID, tradeID); err != nil {
		return respondError(c, h.log, err, tradeNotFound)
	}

	return NoContentResponse(c)
}
