package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// RecoveryService implements the break-glass super-admin password reset.
// It is gated by a deployment-level shared secret instead of a session, so
// the account stays recoverable even when nobody can log in. Only the
// superadmin-role account can ever be mutated through this path.
type RecoveryService struct {
	Store  store.Store
	Secret string
}

// ResetSuperAdmin replaces the superadmin's password when secretKey matches
// the configured recovery secret. The comparison is constant time.
func (s *RecoveryService) ResetSuperAdmin(ctx context.Context, secretKey, newPassword string) error {
	if s.Secret == "" {
		// Recovery disabled; indistinguishable from a wrong key.
		return ErrInvalidSecretKey
	}
	if subtle.ConstantTimeCompare([]byte(secretKey), []byte(s.Secret)) != 1 {
		slogx.FromContext(ctx).Warn("superadmin recovery attempt with bad secret")
		return ErrInvalidSecretKey
	}

	super, err := s.Store.Admins().GetSuperAdmin(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Admins().UpdateAdminPasswordHash(ctx, super.ID, hash); err != nil {
		return err
	}

	slogx.FromContext(ctx).Warn("superadmin password reset via recovery secret", "admin_id", super.ID)
	return nil
}
