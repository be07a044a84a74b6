package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// AdminService covers the admin self-service surface: profile and password
// management for the authenticated admin.
type AdminService struct {
	Store store.Store
}

// GetByID fetches an admin for profile display and principal resolution.
func (s *AdminService) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	admin, err := s.Store.Admins().GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, ErrNotFound
		}
		return domain.Admin{}, err
	}
	return admin, nil
}

// UpdateProfile mutates the acting admin's name and email. Empty fields keep
// their current value.
func (s *AdminService) UpdateProfile(ctx context.Context, adminID, name, email string) (domain.Admin, error) {
	var updated domain.Admin

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Admins().GetAdminByID(ctx, adminID)
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

		if err := tx.Admins().UpdateAdminProfile(ctx, adminID, name, email); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}

		updated, err = tx.Admins().GetAdminByID(ctx, adminID)
		return err
	})
	if err != nil {
		return domain.Admin{}, err
	}

	return updated, nil
}

// ChangePassword replaces the acting admin's password after verifying the
// current one.
func (s *AdminService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.Store.Admins().GetAdminByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if cryptox.VerifyPassword(currentPassword, admin.PasswordHash) != nil {
		return ErrWrongPassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Admins().UpdateAdminPasswordHash(ctx, adminID, hash); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("admin password changed", "admin_id", adminID)
	return nil
}
