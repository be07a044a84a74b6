package domain

import "time"

// AdminRole distinguishes ordinary admins from the distinguished superadmin.
// Exactly one superadmin exists; it is seeded at startup when the admins
// table is empty and is the only account the secret-key recovery targets.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

type Admin struct {
	ID           string
	Name         string
	Email        string // unique within admins
	PasswordHash string // argon2 encoded
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
