package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tradetracker/internal/domain"
	"tradetracker/internal/repository/sqlite"
	"tradetracker/internal/service"
)

var errStorageDown = errors.New("storage down")

// flakyLedger fails every trade insert after the first failAfter succeed
type flakyLedger struct {
	Ledger
	failAfter int
	created   int
}

func (l *flakyLedger) CreateTrade(ctx context.Context, ownerID uuid.UUID, in domain.TradeInput) (*domain.Trade, error) {
	if l.created >= l.failAfter {
		return nil, errStorageDown
	}
	l.created++
	return l.Ledger.CreateTrade(ctx, ownerID, in)
}

func setupSeedEnv(t *testing.T) (*service.CredentialService, *service.LedgerService) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	credentials := service.NewCredentialService(sqlite.NewUserRepository(db), bcrypt.MinCost, zerolog.Nop())
	ledger := service.NewLedgerService(sqlite.NewTradeRepository(db), sqlite.NewDepositRepository(db), zerolog.Nop())
	return credentials, ledger
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	credentials, ledger := setupSeedEnv(t)
	seeder := NewSeeder(credentials, ledger, zerolog.Nop())

	result, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, len(demoDeposits), result.Deposits)
	assert.Equal(t, len(demoTrades), result.Trades)

	user, err := credentials.Verify(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, user.ID)

	trades, err := ledger.ListTrades(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trades, len(demoTrades))
	for _, tr := range trades {
		assert.Equal(t, domain.TradeStatusClosed, tr.Status())
		require.NotNil(t, tr.ProfitLoss)
		assert.InDelta(t, tr.EntryPrice*tr.Shares, tr.TotalCost, 1e-6)
	}

	deposits, err := ledger.ListDeposits(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, deposits, len(demoDeposits))

	// Second run is a no-op
	again, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Zero(t, again.Trades)

	trades, err = ledger.ListTrades(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, trades, len(demoTrades))
}

func TestSeeder_ResumesInterruptedRun(t *testing.T) {
	ctx := context.Background()
	credentials, ledger := setupSeedEnv(t)

	_, err := NewSeeder(credentials, &flakyLedger{Ledger: ledger, failAfter: 5}, zerolog.Nop()).Run(ctx)
	require.ErrorIs(t, err, errStorageDown)

	user, err := credentials.Verify(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	trades, err := ledger.ListTrades(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trades, 5)

	result, err := NewSeeder(credentials, ledger, zerolog.Nop()).Run(ctx)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.True(t, result.Resumed)
	assert.Equal(t, user.ID, result.UserID)
	assert.Zero(t, result.Deposits)
	assert.Equal(t, len(demoTrades)-5, result.Trades)

	trades, err = ledger.ListTrades(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, trades, len(demoTrades))
	deposits, err := ledger.ListDeposits(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, deposits, len(demoDeposits))
}

func TestSeeder_SkipsDemoUserWithOtherPassword(t *testing.T) {
	ctx := context.Background()
	credentials, ledger := setupSeedEnv(t)

	user, err := credentials.Register(ctx, DemoEmail, "changed-password")
	require.NoError(t, err)

	result, err := NewSeeder(credentials, ledger, zerolog.Nop()).Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	trades, err := ledger.ListTrades(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, trades)
}
