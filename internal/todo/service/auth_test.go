package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/pkg/jwtx"
)

func TestRegister(t *testing.T) {
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t)}
	ctx := context.Background()

	t.Run("creates account and issues user token", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "  Alice  ", "Alice@Example.com", "hunter2!")
		require.NoError(t, err)
		require.Equal(t, "Alice", user.Name)
		require.Equal(t, "alice@example.com", user.Email)
		require.NotEmpty(t, user.ID)

		claims, err := svc.Signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, jwtx.RoleUser, claims.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "Alice Again", "alice@example.com", "different")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLoginUser(t *testing.T) {
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t)}
	ctx := context.Background()

	user := createTestUser(t, st, "bob@example.com", "correct-horse")

	t.Run("valid credentials", func(t *testing.T) {
		got, token, err := svc.LoginUser(ctx, "BOB@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)

		claims, err := svc.Signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, jwtx.RoleUser, claims.Role)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, errWrong := svc.LoginUser(ctx, "bob@example.com", "battery-staple")
		_, _, errUnknown := svc.LoginUser(ctx, "nobody@example.com", "correct-horse")

		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrong, errUnknown)
	})
}

func TestLoginAdmin(t *testing.T) {
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t)}
	ctx := context.Background()

	admin := createTestAdmin(t, st, "root@example.com", "s3cure", domain.AdminRoleSuperAdmin)

	t.Run("valid credentials issue admin token", func(t *testing.T) {
		got, token, err := svc.LoginAdmin(ctx, "root@example.com", "s3cure")
		require.NoError(t, err)
		require.Equal(t, admin.ID, got.ID)

		claims, err := svc.Signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, jwtx.RoleAdmin, claims.Role)
	})

	t.Run("user account cannot log in on the admin surface", func(t *testing.T) {
		createTestUser(t, st, "user@example.com", "password")

		_, _, err := svc.LoginAdmin(ctx, "user@example.com", "password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
