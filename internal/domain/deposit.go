package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit represents cash moved into the brokerage account
type Deposit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Amount      float64   `json:"amount"`
	DepositDate time.Time `json:"deposit_date"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MaxDepositAmount is the exclusive magnitude bound of the amount column,
// NUMERIC(14, 2)
const MaxDepositAmount = 1e12

// DepositInput holds the caller-supplied fields of a new deposit
type DepositInput struct {
	Amount      float64
	DepositDate time.Time
	Notes       *string
}

// NewDeposit builds a validated deposit owned by userID
func NewDeposit(userID uuid.UUID, in DepositInput) (*Deposit, error) {
	if !isFinite(in.Amount) {
		return nil, NewValidationError("amount", "must be a finite number")
	}
	if math.Abs(in.Amount) >= MaxDepositAmount {
		return nil, NewValidationError("amount", "must be less than 1000000000000 in magnitude")
	}
	// Amounts are currency: no fractions of a cent.
	if decimal.NewFromFloat(in.Amount).Exponent() < -2 {
		return nil, NewValidationError("amount", "must have at most two decimal places")
	}
	if in.DepositDate.IsZero() {
		return nil, NewValidationError("deposit_date", "is required")
	}

	return &Deposit{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      in.Amount,
		DepositDate: truncateDate(in.DepositDate),
		Notes:       in.Notes,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
