package domain

import "time"

// User models an account in the system. Accounts are never hard-deleted:
// deactivation flips IsActive and every later authenticated call fails.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
