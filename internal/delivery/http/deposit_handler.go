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

const depositNotFound = "Deposit not found"

// DepositLedger is the deposit side of the ledger service
type DepositLedger interface {
	CreateDeposit(ctx context.Context, ownerID uuid.UUID, in domain.DepositInput) (*domain.Deposit, error)
	ListDeposits(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deposit, error)
	DeleteDeposit(ctx context.Context, ownerID, depositID uuid.UUID) error
}

// DepositHandler handles deposit requests of the authenticated user
type DepositHandler struct {
	ledger DepositLedger
	log    zerolog.Logger
}

// NewDepositHandler creates a new DepositHandler
func NewDepositHandler(ledger DepositLedger, log zerolog.Logger) *DepositHandler {
	return &DepositHandler{
		ledger: ledger,
		log:    log.With().Str("component", "deposit_handler").Logger(),
	}
}

// List returns the user's deposits, most recent first
// GET /api/deposits
func (h *DepositHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deposits, err := h.ledger.ListDeposits(ctx, userID)
	if err != nil {
		return respondError(c, h.log, err, depositNotFound)
	}

	return SuccessResponse(c, dto.NewDepositOutputs(deposits))
}

// Create records a deposit
// POST /api/deposits
func (h *DepositHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateDepositRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.log, err, depositNotFound)
	}

	in, err := req.ToInput()
	if err != nil {
		return respondError(c, h.log, err, depositNotFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deposit, err := h.ledger.CreateDeposit(ctx, userID, in)
	if err != nil {
		return respondError(c, h.log, err, depositNotFound)
	}

	return CreatedResponse(c, dto.NewDepositOutput(deposit))
}

// Delete removes a deposit
// DELETE /api/deposits/:id
func (h *DepositHandler) Delete(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	depositID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NotFoundResponse(c, depositNotFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.ledger.DeleteDeposit(ctx, userID, depositID); err != nil {
		return respondError(c, h.log, err, depositNotFound)
	}

	return NoContentResponse(c)
}
