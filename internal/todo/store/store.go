package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Admins() Admins
	Tasks() Tasks
	ResetTokens() ResetTokens

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Users() Users
	Admins() Admins
	Tasks() Tasks
	ResetTokens() ResetTokens
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used at login and when requesting a password reset.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserProfile mutates name/email and bumps updated_at.
	UpdateUserProfile(ctx context.Context, userID, name, email string) error

	// UpdateUserPasswordHash sets the password_hash and bumps updated_at.
	UpdateUserPasswordHash(ctx context.Context, userID, newHash string) error

	// DeleteUser cascades to the user's tasks (per schema).
	DeleteUser(ctx context.Context, userID string) error

	ListUsers(ctx context.Context) ([]domain.User, error)

	CountUsers(ctx context.Context) (int64, error)
}

type Admins interface {
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)

	// GetAdminByEmail is used during admin login.
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)

	// GetSuperAdmin returns the distinguished superadmin-role admin.
	GetSuperAdmin(ctx context.Context) (domain.Admin, error)

	// CreateAdmin inserts a new admin. Returns ErrAlreadyExists when the
	// email is taken.
	CreateAdmin(ctx context.Context, a domain.Admin) error

	UpdateAdminProfile(ctx context.Context, adminID, name, email string) error

	UpdateAdminPasswordHash(ctx context.Context, adminID, newHash string) error

	// IsEmpty returns true if there are no admins (drives superadmin seeding).
	IsEmpty(ctx context.Context) (bool, error)
}

type Tasks interface {
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasksByOwner returns a user's tasks, newest first.
	ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)

	// ListTasks returns every task, newest first (admin surface).
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// ListRecentTasks returns the n most recently created tasks.
	ListRecentTasks(ctx context.Context, n int) ([]domain.Task, error)

	CreateTask(ctx context.Context, t domain.Task) error

	// UpdateTask applies the non-nil fields of changes and bumps updated_at.
	UpdateTask(ctx context.Context, taskID string, changes domain.TaskChanges) error

	DeleteTask(ctx context.Context, taskID string) error

	CountTasks(ctx context.Context) (int64, error)

	CountCompletedTasks(ctx context.Context) (int64, error)

	// CountTasksByCategory returns a category -> count map across all tasks.
	CountTasksByCategory(ctx context.Context) (map[string]int64, error)
}

type ResetTokens interface {
	// CreateResetToken writes a new pending reset (token_hash is the SHA-256
	// fingerprint of the opaque token).
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// ConsumeResetToken atomically marks the matching unconsumed, unexpired
	// token as consumed and returns it. This single conditional mutation is
	// the concurrency-correctness mechanism: a racing second consumer gets
	// ErrNotFound.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.ResetToken, error)

	// InvalidateUserResetTokens consumes all outstanding tokens for a user,
	// so only the most recently issued token is ever redeemable.
	InvalidateUserResetTokens(ctx context.Context, userID string) error

	// DeleteExpiredResetTokens is housekeeping.
	DeleteExpiredResetTokens(ctx context.Context) error
}
