package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// UserService covers profile lookup plus the admin-only user management
// surface.
type UserService struct {
	Store store.Store
}

// GetByID fetches a user for the /me surface and principal resolution.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// List returns every user (admin surface).
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// Create adds a user account on behalf of an admin.
func (s *UserService) Create(ctx context.Context, name, email, password string) (domain.User, error) {
	user := domain.User{
		ID:    idx.New().String(),
		Name:  strings.TrimSpace(name),
		Email: normalizeEmail(email),
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = hash

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created by admin", "user_id", user.ID)
	return user, nil
}

// Update mutates a user's profile and, when password is non-empty, replaces
// their password hash. Both writes happen in one transaction.
func (s *UserService) Update(ctx context.Context, userID, name, email, password string) (domain.User, error) {
	var updated domain.User

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if name = strings.TrimSpace(name); name == "" {
			name = current.Name
		}
		if email = normalizeEmail(email); email == "" {
			email = current.Email
		}

		if err := tx.Users().UpdateUserProfile(ctx, userID, name, email); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}

		if password != "" {
			hash, err := cryptox.HashPassword(password)
			if err != nil {
				return err
			}
			if err := tx.Users().UpdateUserPasswordHash(ctx, userID, hash); err != nil {
				return err
			}
		}

		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	return updated, nil
}

// Delete removes a user. Their tasks and reset tokens go with them via the
// schema's cascades.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	err := s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", "user_id", userID)
	return nil
}
