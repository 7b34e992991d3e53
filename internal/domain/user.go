package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns trades and deposits
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"created_at"`
}
