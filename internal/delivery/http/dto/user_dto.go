package dto

import (
	"time"

	"tradetracker/internal/domain"
)

// UserOutput represents user details in API responses
type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserOutput converts a domain user
func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
