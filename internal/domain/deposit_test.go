package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeposit(t *testing.T) {
	userID := uuid.New()
	notes := "1500 AUD converted"
	when := time.Date(2025, 6, 13, 15, 30, 0, 0, time.UTC)

	deposit, err := NewDeposit(userID, DepositInput{Amount: 971.92, DepositDate: when, Notes: &notes})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, deposit.ID)
	assert.Equal(t, userID, deposit.UserID)
	assert.Equal(t, 971.92, deposit.Amount)
	assert.Equal(t, "2025-06-13", FormatDate(deposit.DepositDate))
	assert.Equal(t, 0, deposit.DepositDate.Hour())
}

func TestNewDeposit_AllowsNegativeAmount(t *testing.T) {
	_, err := NewDeposit(uuid.New(), DepositInput{Amount: -50, DepositDate: time.Now()})
	assert.NoError(t, err)
}

func TestNewDeposit_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    DepositInput
		field string
	}{
		{"fractional cents", DepositInput{Amount: 10.005, DepositDate: time.Now()}, "amount"},
		{"not a number", DepositInput{Amount: math.NaN(), DepositDate: time.Now()}, "amount"},
		{"infinite", DepositInput{Amount: math.Inf(1), DepositDate: time.Now()}, "amount"},
		{"missing date", DepositInput{Amount: 10}, "deposit_date"},
		{"exceeds column precision", DepositInput{Amount: MaxDepositAmount, DepositDate: time.Now()}, "amount"},
		{"negative exceeds column precision", DepositInput{Amount: -1e13, DepositDate: time.Now()}, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeposit(uuid.New(), tt.in)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNewDeposit_LargestStorableAmount(t *testing.T) {
	deposit, err := NewDeposit(uuid.New(), DepositInput{Amount: 999999999999.99, DepositDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, 999999999999.99, deposit.Amount)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-16")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "2025-09-16", FormatDate(d))

	_, err = ParseDate("16/09/2025")
	assert.Error(t, err)
}
