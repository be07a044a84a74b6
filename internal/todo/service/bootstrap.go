package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// SeedSuperAdmin creates the initial superadmin account when the admins
// table is empty. It runs once at startup and is a no-op on every later
// boot, so the system always has exactly one recoverable superadmin.
func SeedSuperAdmin(ctx context.Context, st store.Store, name, email, password string) error {
	empty, err := st.Admins().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check admins table: %w", err)
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	admin := domain.Admin{
		ID:           idx.New().String(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.AdminRoleSuperAdmin,
	}

	if err := st.Admins().CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}

	slogx.FromContext(ctx).Info("seeded superadmin account", "admin_id", admin.ID, "email", admin.Email)
	return nil
}
