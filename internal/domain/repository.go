package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user, returning ErrConflict when the email is taken
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TradeMutation edits a trade inside an update transaction.
// Returning an error rolls the transaction back.
type TradeMutation func(trade *Trade) error

// TradeRepository defines the interface for trade operations.
// Every lookup is scoped by owner; another user's trade is reported as ErrNotFound.
type TradeRepository interface {
	// Create inserts a new trade
	Create(ctx context.Context, trade *Trade) error

	// ListByUser retrieves all trades of a user, newest entry first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Trade, error)

	// GetForUser retrieves a trade by ID and owner
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*Trade, error)

	// UpdateForUser reads, mutates and writes a trade in one transaction
	UpdateForUser(ctx context.Context, id, userID uuid.UUID, mutate TradeMutation) (*Trade, error)

	// DeleteForUser permanently removes a trade
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error
}

// DepositRepository defines the interface for deposit operations
type DepositRepository interface {
	// Create inserts a new deposit
	Create(ctx context.Context, deposit *Deposit) error

	// ListByUser retrieves all deposits of a user, most recent first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Deposit, error)

	// DeleteForUser permanently removes a deposit
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error
}
