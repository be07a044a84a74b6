package domain

import "time"

// ResetToken models a pending password-reset request. Only the SHA-256
// fingerprint of the opaque token is stored; the raw value travels by email
// and is never persisted.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Consumed  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
