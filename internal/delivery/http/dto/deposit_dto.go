package dto

import (
	"time"

	"tradetracker/internal/domain"
)

// CreateDepositRequest represents the payload for a new deposit
type CreateDepositRequest struct {
	Amount      *float64 `json:"amount" validate:"required"`
	DepositDate string   `json:"deposit_date" validate:"required,datetime=2006-01-02"`
	Notes       *string  `json:"notes"`
}

// ToInput converts the request into ledger input
func (r CreateDepositRequest) ToInput() (domain.DepositInput, error) {
	depositDate, err := parseDateField("deposit_date", r.DepositDate)
	if err != nil {
		return domain.DepositInput{}, err
	}

	in := domain.DepositInput{DepositDate: depositDate, Notes: r.Notes}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	return in, nil
}

// DepositOutput represents a deposit in API responses
type DepositOutput struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	DepositDate string  `json:"deposit_date"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// NewDepositOutputs converts a list of domain deposits
func NewDepositOutputs(deposits []*domain.Deposit) []DepositOutput {
	output := make([]DepositOutput, 0, len(deposits))
	for _, d := range deposits {
		output = append(output, NewDepositOutput(d))
	}
	return output
}

// NewDepositOutput converts a domain deposit
func NewDepositOutput(d *domain.Deposit) DepositOutput {
	return DepositOutput{
		ID:          d.ID.String(),
		Amount:      d.Amount,
		DepositDate: domain.FormatDate(d.DepositDate),
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
