package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade represents a single brokerage round trip recorded by a user.
// TotalCost, ProfitLoss and ProfitLossPercent are derived and only ever
// written by RecalculateMetrics.
type Trade struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Symbol            string     `json:"symbol"`
	EntryDate         time.Time  `json:"entry_date"`
	ExitDate          *time.Time `json:"exit_date,omitempty"`
	EntryPrice        float64    `json:"entry_price"`
	ExitPrice         *float64   `json:"exit_price,omitempty"`
	Shares            float64    `json:"shares"`
	BrokerageFee      *float64   `json:"brokerage_fee,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	TotalCost         float64    `json:"total_cost"`
	ProfitLoss        *float64   `json:"profit_loss,omitempty"`
	ProfitLossPercent *float64   `json:"profit_loss_percent,omitempty"` // 5.0 means five percent
	CreatedAt         time.Time  `json:"created_at"`
}

// MaxSymbolLength matches the width of the symbol column
const MaxSymbolLength = 32

// TradeStatus constants
const (
	TradeStatusOpen   = "OPEN"
	TradeStatusClosed = "CLOSED"
)

// TradeMetrics holds the derived fields of a trade
type TradeMetrics struct {
	TotalCost         float64
	ProfitLoss        *float64
	ProfitLossPercent *float64
}

var hundred = decimal.NewFromInt(100)

// CalculateTradeMetrics derives cost basis and net P&L from the trade inputs.
// P&L is only defined once an exit price exists; the brokerage fee is
// deducted from the raw price movement.
func CalculateTradeMetrics(entryPrice, shares float64, exitPrice, brokerageFee *float64) TradeMetrics {
	entry := decimal.NewFromFloat(entryPrice)
	qty := decimal.NewFromFloat(shares)
	totalCost := entry.Mul(qty)

	metrics := TradeMetrics{TotalCost: totalCost.InexactFloat64()}
	if exitPrice == nil {
		return metrics
	}

	fee := decimal.Zero
	if brokerageFee != nil {
		fee = decimal.NewFromFloat(*brokerageFee)
	}

	rawPL := decimal.NewFromFloat(*exitPrice).Sub(entry).Mul(qty)
	pl := rawPL.Sub(fee)

	percent := decimal.Zero
	if totalCost.IsPositive() {
		percent = pl.Div(totalCost).Mul(hundred)
	}

	plValue := pl.InexactFloat64()
	percentValue := percent.InexactFloat64()
	metrics.ProfitLoss = &plValue
	metrics.ProfitLossPercent = &percentValue
	return metrics
}

// Validate rejects derived values that overflowed float64. Inputs that are
// individually finite can still multiply past the representable range.
func (m TradeMetrics) Validate() error {
	if !isFinite(m.TotalCost) {
		return NewValidationError("total_cost", "is out of range")
	}
	if m.ProfitLoss != nil && !isFinite(*m.ProfitLoss) {
		return NewValidationError("profit_loss", "is out of range")
	}
	if m.ProfitLossPercent != nil && !isFinite(*m.ProfitLossPercent) {
		return NewValidationError("profit_loss_percent", "is out of range")
	}
	return nil
}

// RecalculateMetrics overwrites every derived field, clearing P&L on open
// positions. The trade is left untouched when the result is out of range.
func (t *Trade) RecalculateMetrics() error {
	m := CalculateTradeMetrics(t.EntryPrice, t.Shares, t.ExitPrice, t.BrokerageFee)
	if err := m.Validate(); err != nil {
		return err
	}
	t.TotalCost = m.TotalCost
	t.ProfitLoss = m.ProfitLoss
	t.ProfitLossPercent = m.ProfitLossPercent
	return nil
}

// IsOpen reports whether the trade has no exit price yet
func (t *Trade) IsOpen() bool {
	return t.ExitPrice == nil
}

// Status returns OPEN or CLOSED
func (t *Trade) Status() string {
	if t.IsOpen() {
		return TradeStatusOpen
	}
	return TradeStatusClosed
}

// Validate checks the non-derived fields of a trade
func (t *Trade) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return NewValidationError("symbol", "is required")
	}
	if utf8.RuneCountInString(t.Symbol) > MaxSymbolLength {
		return NewValidationError("symbol", "must be at most 32 characters")
	}
	if t.EntryDate.IsZero() {
		return NewValidationError("entry_date", "is required")
	}
	if !isPositive(t.EntryPrice) {
		return NewValidationError("entry_price", "must be greater than zero")
	}
	if !isPositive(t.Shares) {
		return NewValidationError("shares", "must be greater than zero")
	}
	if t.ExitPrice != nil && !isPositive(*t.ExitPrice) {
		return NewValidationError("exit_price", "must be greater than zero")
	}
	if t.BrokerageFee != nil && (!isFinite(*t.BrokerageFee) || *t.BrokerageFee < 0) {
		return NewValidationError("brokerage_fee", "must not be negative")
	}
	if t.ExitDate != nil && t.ExitDate.Before(t.EntryDate) {
		return NewValidationError("exit_date", "must not be before entry_date")
	}
	return nil
}

// TradeInput holds the caller-supplied fields of a new trade
type TradeInput struct {
	Symbol       string
	EntryDate    time.Time
	ExitDate     *time.Time
	EntryPrice   float64
	ExitPrice    *float64
	Shares       float64
	BrokerageFee *float64
	Notes        *string
}

// NewTrade builds a trade owned by userID with its metrics computed
func NewTrade(userID uuid.UUID, in TradeInput) (*Trade, error) {
	t := &Trade{
		ID:           uuid.New(),
		UserID:       userID,
		Symbol:       normalizeSymbol(in.Symbol),
		EntryDate:    truncateDate(in.EntryDate),
		ExitDate:     truncateDatePtr(in.ExitDate),
		EntryPrice:   in.EntryPrice,
		ExitPrice:    in.ExitPrice,
		Shares:       in.Shares,
		BrokerageFee: in.BrokerageFee,
		Notes:        in.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := t.RecalculateMetrics(); err != nil {
		return nil, err
	}
	return t, nil
}

// TradePatch is a partial trade update. Unset fields are left untouched,
// null clears an optional field.
type TradePatch struct {
	Symbol       Optional[string]
	EntryDate    Optional[time.Time]
	ExitDate     Optional[time.Time]
	EntryPrice   Optional[float64]
	ExitPrice    Optional[float64]
	Shares       Optional[float64]
	BrokerageFee Optional[float64]
	Notes        Optional[string]
}

// Validate rejects nulls on fields a trade cannot live without
func (p TradePatch) Validate() error {
	switch {
	case p.Symbol.IsNull():
		return NewValidationError("symbol", "cannot be null")
	case p.EntryDate.IsNull():
		return NewValidationError("entry_date", "cannot be null")
	case p.EntryPrice.IsNull():
		return NewValidationError("entry_price", "cannot be null")
	case p.Shares.IsNull():
		return NewValidationError("shares", "cannot be null")
	}
	return nil
}

// ApplyTo writes the supplied fields into t. Derived fields are not touched;
// callers must validate and call RecalculateMetrics afterwards.
func (p TradePatch) ApplyTo(t *Trade) {
	if v, ok := p.Symbol.Value(); ok {
		t.Symbol = normalizeSymbol(v)
	}
	if v, ok := p.EntryDate.Value(); ok {
		t.EntryDate = truncateDate(v)
	}
	if p.ExitDate.IsSet() {
		t.ExitDate = truncateDatePtr(p.ExitDate.Ptr())
	}
	if v, ok := p.EntryPrice.Value(); ok {
		t.EntryPrice = v
	}
	if p.ExitPrice.IsSet() {
		t.ExitPrice = p.ExitPrice.Ptr()
	}
	if v, ok := p.Shares.Value(); ok {
		t.Shares = v
	}
	if p.BrokerageFee.IsSet() {
		t.BrokerageFee = p.BrokerageFee.Ptr()
	}
	if p.Notes.IsSet() {
		t.Notes = p.Notes.Ptr()
	}
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isPositive(v float64) bool {
	return isFinite(v) && v > 0
}
