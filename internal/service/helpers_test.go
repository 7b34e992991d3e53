package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tradetracker/internal/repository/sqlite"
)

type testEnv struct {
	credentials *CredentialService
	tokens      *TokenService
	guard       *AccessGuard
	ledger      *LedgerService
	users       *sqlite.UserRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	tokens := NewTokenService("test-secret", time.Hour)

	return &testEnv{
		credentials: NewCredentialService(users, bcrypt.MinCost, zerolog.Nop()),
		tokens:      tokens,
		guard:       NewAccessGuard(tokens, users),
		ledger:      NewLedgerService(sqlite.NewTradeRepository(db), sqlite.NewDepositRepository(db), zerolog.Nop()),
		users:       users,
	}
}
