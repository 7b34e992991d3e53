package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tradetracker/internal/domain"
)

// TokenVerifier resolves a bearer token to a user ID
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// AccessGuard turns a bearer token into the full user record.
// Any failure to do so is reported as ErrUnauthenticated.
type AccessGuard struct {
	tokens   TokenVerifier
	userRepo domain.UserRepository
}

// NewAccessGuard creates a new AccessGuard
func NewAccessGuard(tokens TokenVerifier, userRepo domain.UserRepository) *AccessGuard {
	return &AccessGuard{tokens: tokens, userRepo: userRepo}
}

// Authenticate verifies token and loads its user
func (g *AccessGuard) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := g.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user %s no longer exists: %w", userID, domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to load authenticated user: %w", err)
	}

	return user, nil
}
