package dto

import (
	"time"

	"tradetracker/internal/domain"
)

// CreateTradeRequest represents the payload for a new trade.
// Derived fields (total_cost, profit_loss, profit_loss_percent) are not accepted.
type CreateTradeRequest struct {
	Symbol       string   `json:"symbol" validate:"required"`
	EntryDate    string   `json:"entry_date" validate:"required,datetime=2006-01-02"`
	ExitDate     *string  `json:"exit_date" validate:"omitempty,datetime=2006-01-02"`
	EntryPrice   *float64 `json:"entry_price" validate:"required,gt=0"`
	ExitPrice    *float64 `json:"exit_price" validate:"omitempty,gt=0"`
	Shares       *float64 `json:"shares" validate:"required,gt=0"`
	BrokerageFee *float64 `json:"brokerage_fee" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

// ToInput converts the request into ledger input
func (r CreateTradeRequest) ToInput() (domain.TradeInput, error) {
	entryDate, err := parseDateField("entry_date", r.EntryDate)
	if err != nil {
		return domain.TradeInput{}, err
	}

	var exitDate *time.Time
	if r.ExitDate != nil {
		d, err := parseDateField("exit_date", *r.ExitDate)
		if err != nil {
			return domain.TradeInput{}, err
		}
		exitDate = &d
	}

	in := domain.TradeInput{
		Symbol:       r.Symbol,
		EntryDate:    entryDate,
		ExitDate:     exitDate,
		ExitPrice:    r.ExitPrice,
		BrokerageFee: r.BrokerageFee,
		Notes:        r.Notes,
	}
	if r.EntryPrice != nil {
		in.EntryPrice = *r.EntryPrice
	}
	if r.Shares != nil {
		in.Shares = *r.Shares
	}
	return in, nil
}

// UpdateTradeRequest is a partial update: absent keys are left untouched,
// explicit nulls clear optional fields.
type UpdateTradeRequest struct {
	Symbol       domain.Optional[string]  `json:"symbol"`
	EntryDate    domain.Optional[string]  `json:"entry_date"`
	ExitDate     domain.Optional[string]  `json:"exit_date"`
	EntryPrice   domain.Optional[float64] `json:"entry_price"`
	ExitPrice    domain.Optional[float64] `json:"exit_price"`
	Shares       domain.Optional[float64] `json:"shares"`
	BrokerageFee domain.Optional[float64] `json:"brokerage_fee"`
	Notes        domain.Optional[string]  `json:"notes"`
}

// ToPatch converts the request into a ledger patch
func (r UpdateTradeRequest) ToPatch() (domain.TradePatch, error) {
	entryDate, err := optionalDate("entry_date", r.EntryDate)
	if err != nil {
		return domain.TradePatch{}, err
	}
	exitDate, err := optionalDate("exit_date", r.ExitDate)
	if err != nil {
		return domain.TradePatch{}, err
	}

	return domain.TradePatch{
		Symbol:       r.Symbol,
		EntryDate:    entryDate,
		ExitDate:     exitDate,
		EntryPrice:   r.EntryPrice,
		ExitPrice:    r.ExitPrice,
		Shares:       r.Shares,
		BrokerageFee: r.BrokerageFee,
		Notes:        r.Notes,
	}, nil
}

// TradeOutput represents a trade in API responses.
// P&L fields are null while the position is open.
type TradeOutput struct {
	ID                string   `json:"id"`
	Symbol            string   `json:"symbol"`
	Status            string   `json:"status"`
	EntryDate         string   `json:"entry_date"`
	ExitDate          *string  `json:"exit_date"`
	EntryPrice        float64  `json:"entry_price"`
	ExitPrice         *float64 `json:"exit_price"`
	Shares            float64  `json:"shares"`
	TotalCost         float64  `json:"total_cost"`
	ProfitLoss        *float64 `json:"profit_loss"`
	ProfitLossPercent *float64 `json:"profit_loss_percent"`
	BrokerageFee      *float64 `json:"brokerage_fee"`
	Notes             *string  `json:"notes"`
	CreatedAt         string   `json:"created_at"`
}

// NewTradeOutput converts a domain trade
func NewTradeOutput(t *domain.Trade) TradeOutput {
	var exitDate *string
	if t.ExitDate != nil {
		s := domain.FormatDate(*t.ExitDate)
		exitDate = &s
	}

	return TradeOutput{
		ID:                t.ID.String(),
		Symbol:            t.Symbol,
		Status:            t.Status(),
		EntryDate:         domain.FormatDate(t.EntryDate),
		ExitDate:          exitDate,
		EntryPrice:        t.EntryPrice,
		ExitPrice:         t.ExitPrice,
		Shares:            t.Shares,
		TotalCost:         t.TotalCost,
		ProfitLoss:        t.ProfitLoss,
		ProfitLossPercent: t.ProfitLossPercent,
		BrokerageFee:      t.BrokerageFee,
		Notes:             t.Notes,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
}

// NewTradeOutputs converts a list of domain trades
func NewTradeOutputs(trades []*domain.Trade) []TradeOutput {
	output := make([]TradeOutput, 0, len(trades))
	for _, t := range trades {
		output = append(output, NewTradeOutput(t))
	}
	return output
}

func parseDateField(field, value string) (time.Time, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, err.Error())
	}
	return d, nil
}

func optionalDate(field string, o domain.Optional[string]) (domain.Optional[time.Time], error) {
	if !o.IsSet() {
		return domain.Optional[time.Time]{}, nil
	}
	v, ok := o.Value()
	if !ok {
		return domain.Null[time.Time](), nil
	}
	d, err := parseDateField(field, v)
	if err != nil {
		return domain.Optional[time.Time]{}, err
	}
	return domain.Some(d), nil
}
