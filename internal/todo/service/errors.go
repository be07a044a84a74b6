package service

import "errors"

// Service-level sentinel errors. Handlers map these onto the HTTP taxonomy;
// the messages clients see live in the HTTP layer and are deliberately
// generic to avoid account or credential enumeration.
var (
	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" so the two are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrEmailTaken reports a registration or update against an email that
	// already has an account.
	ErrEmailTaken = errors.New("service: email already in use")

	// ErrNotFound reports a missing user, admin or task.
	ErrNotFound = errors.New("service: not found")

	// ErrNotOwner reports a task mutation by a principal that does not own
	// the task.
	ErrNotOwner = errors.New("service: not the task owner")

	// ErrInvalidResetToken covers missing, consumed and expired reset
	// tokens uniformly.
	ErrInvalidResetToken = errors.New("service: invalid or expired reset token")

	// ErrInvalidSecretKey reports a failed super-admin recovery attempt.
	ErrInvalidSecretKey = errors.New("service: invalid secret key")

	// ErrWrongPassword reports a change-password attempt with an incorrect
	// current password.
	ErrWrongPassword = errors.New("service: current password is incorrect")
)
