package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func nvdaInput(t *testing.T) TradeInput {
	exitDate := date(t, "2025-06-26")
	return TradeInput{
		Symbol:       "NVDA",
		EntryDate:    date(t, "2025-06-18"),
		ExitDate:     &exitDate,
		EntryPrice:   145.40,
		ExitPrice:    floatPtr(155.53),
		Shares:       3.0743,
		BrokerageFee: floatPtr(6.0),
	}
}

func TestCalculateTradeMetrics_ClosedTrade(t *testing.T) {
	m := CalculateTradeMetrics(145.40, 3.0743, floatPtr(155.53), floatPtr(6.0))

	assert.InDelta(t, 446.99, m.TotalCost, 0.02)
	require.NotNil(t, m.ProfitLoss)
	require.NotNil(t, m.ProfitLossPercent)
	assert.InDelta(t, 25.15, *m.ProfitLoss, 0.02)
	assert.InDelta(t, 5.63, *m.ProfitLossPercent, 0.02)

	// Percent is consistent with the other derived fields
	assert.InDelta(t, *m.ProfitLoss/m.TotalCost*100, *m.ProfitLossPercent, 1e-9)
}

func TestCalculateTradeMetrics_OpenTrade(t *testing.T) {
	m := CalculateTradeMetrics(145.40, 3.0743, nil, floatPtr(6.0))

	assert.InDelta(t, 446.99, m.TotalCost, 0.02)
	assert.Nil(t, m.ProfitLoss)
	assert.Nil(t, m.ProfitLossPercent)
}

func TestCalculateTradeMetrics_NoFee(t *testing.T) {
	m := CalculateTradeMetrics(10, 5, floatPtr(12), nil)

	assert.Equal(t, 50.0, m.TotalCost)
	require.NotNil(t, m.ProfitLoss)
	assert.Equal(t, 10.0, *m.ProfitLoss)
	assert.Equal(t, 20.0, *m.ProfitLossPercent)
}

func TestCalculateTradeMetrics_Loss(t *testing.T) {
	m := CalculateTradeMetrics(100, 2, floatPtr(90), floatPtr(1))

	require.NotNil(t, m.ProfitLoss)
	assert.Equal(t, -21.0, *m.ProfitLoss)
	assert.Equal(t, -10.5, *m.ProfitLossPercent)
}

func TestCalculateTradeMetrics_ZeroCostGivesZeroPercent(t *testing.T) {
	m := CalculateTradeMetrics(10, 0, floatPtr(12), floatPtr(1))

	assert.Equal(t, 0.0, m.TotalCost)
	require.NotNil(t, m.ProfitLoss)
	assert.Equal(t, -1.0, *m.ProfitLoss)
	require.NotNil(t, m.ProfitLossPercent)
	assert.Equal(t, 0.0, *m.ProfitLossPercent)
}

func TestCalculateTradeMetrics_TotalCostIsEntryTimesShares(t *testing.T) {
	cases := []struct {
		price, shares float64
	}{
		{14.89, 34.853},
		{2.10, 304.073},
		{0.01, 1},
		{444.45, 4.376},
	}
	for _, tc := range cases {
		m := CalculateTradeMetrics(tc.price, tc.shares, nil, nil)
		assert.InDelta(t, tc.price*tc.shares, m.TotalCost, 1e-9)
	}
}

func TestRecalculateMetrics_Idempotent(t *testing.T) {
	trade, err := NewTrade(uuid.New(), nvdaInput(t))
	require.NoError(t, err)

	first := *trade
	require.NoError(t, trade.RecalculateMetrics())
	require.NoError(t, trade.RecalculateMetrics())

	assert.Equal(t, first.TotalCost, trade.TotalCost)
	assert.Equal(t, *first.ProfitLoss, *trade.ProfitLoss)
	assert.Equal(t, *first.ProfitLossPercent, *trade.ProfitLossPercent)
}

func TestRecalculateMetrics_ClearsStalePnL(t *testing.T) {
	trade, err := NewTrade(uuid.New(), nvdaInput(t))
	require.NoError(t, err)
	require.NotNil(t, trade.ProfitLoss)

	trade.ExitPrice = nil
	require.NoError(t, trade.RecalculateMetrics())

	assert.Nil(t, trade.ProfitLoss)
	assert.Nil(t, trade.ProfitLossPercent)
	assert.Equal(t, TradeStatusOpen, trade.Status())
}

func TestNewTrade(t *testing.T) {
	userID := uuid.New()
	in := nvdaInput(t)
	in.Symbol = "  nvda "

	trade, err := NewTrade(userID, in)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, trade.ID)
	assert.Equal(t, userID, trade.UserID)
	assert.Equal(t, "NVDA", trade.Symbol)
	assert.Equal(t, TradeStatusClosed, trade.Status())
	assert.False(t, trade.CreatedAt.IsZero())
	require.NotNil(t, trade.ProfitLoss)
	assert.InDelta(t, 25.15, *trade.ProfitLoss, 0.02)
}

func TestNewTrade_Validation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(in *TradeInput)
	}{
		{"empty symbol", "symbol", func(in *TradeInput) { in.Symbol = "   " }},
		{"symbol too long", "symbol", func(in *TradeInput) { in.Symbol = strings.Repeat("A", MaxSymbolLength+1) }},
		{"missing entry date", "entry_date", func(in *TradeInput) { in.EntryDate = time.Time{} }},
		{"zero entry price", "entry_price", func(in *TradeInput) { in.EntryPrice = 0 }},
		{"negative shares", "shares", func(in *TradeInput) { in.Shares = -1 }},
		{"zero exit price", "exit_price", func(in *TradeInput) { in.ExitPrice = floatPtr(0) }},
		{"negative fee", "brokerage_fee", func(in *TradeInput) { in.BrokerageFee = floatPtr(-1) }},
		{"exit before entry", "exit_date", func(in *TradeInput) {
			d := in.EntryDate.AddDate(0, 0, -1)
			in.ExitDate = &d
		}},
		{"total cost overflow", "total_cost", func(in *TradeInput) {
			in.EntryPrice = 1e308
			in.Shares = 10
			in.ExitPrice = nil
			in.ExitDate = nil
		}},
		{"profit overflow", "profit_loss", func(in *TradeInput) {
			in.EntryPrice = 1
			in.Shares = 1e300
			in.ExitPrice = floatPtr(1e10)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := nvdaInput(t)
			tt.edit(&in)

			_, err := NewTrade(uuid.New(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNewTrade_SymbolAtColumnWidth(t *testing.T) {
	in := nvdaInput(t)
	in.Symbol = strings.Repeat("a", MaxSymbolLength)

	trade, err := NewTrade(uuid.New(), in)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("A", MaxSymbolLength), trade.Symbol)
}

func TestRecalculateMetrics_OverflowLeavesTradeUntouched(t *testing.T) {
	trade, err := NewTrade(uuid.New(), nvdaInput(t))
	require.NoError(t, err)
	before := *trade

	trade.EntryPrice = 1e308
	trade.Shares = 10

	err = trade.RecalculateMetrics()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before.TotalCost, trade.TotalCost)
	assert.Equal(t, before.ProfitLoss, trade.ProfitLoss)
	assert.Equal(t, before.ProfitLossPercent, trade.ProfitLossPercent)
}

func TestTradePatch_Validate(t *testing.T) {
	assert.NoError(t, TradePatch{}.Validate())
	assert.NoError(t, TradePatch{ExitPrice: Null[float64](), Notes: Null[string]()}.Validate())

	assert.ErrorIs(t, TradePatch{Symbol: Null[string]()}.Validate(), ErrValidation)
	assert.ErrorIs(t, TradePatch{EntryDate: Null[time.Time]()}.Validate(), ErrValidation)
	assert.ErrorIs(t, TradePatch{EntryPrice: Null[float64]()}.Validate(), ErrValidation)
	assert.ErrorIs(t, TradePatch{Shares: Null[float64]()}.Validate(), ErrValidation)
}

func TestTradePatch_ApplyTo(t *testing.T) {
	trade, err := NewTrade(uuid.New(), nvdaInput(t))
	require.NoError(t, err)
	notes := "keep me"
	trade.Notes = &notes

	TradePatch{
		Symbol:    Some("amd"),
		ExitPrice: Null[float64](),
		ExitDate:  Null[time.Time](),
	}.ApplyTo(trade)

	assert.Equal(t, "AMD", trade.Symbol)
	assert.Nil(t, trade.ExitPrice)
	assert.Nil(t, trade.ExitDate)
	// Unset fields are untouched
	assert.Equal(t, 145.40, trade.EntryPrice)
	assert.Equal(t, 3.0743, trade.Shares)
	require.NotNil(t, trade.BrokerageFee)
	assert.Equal(t, 6.0, *trade.BrokerageFee)
	require.NotNil(t, trade.Notes)
	assert.Equal(t, "keep me", *trade.Notes)
}
