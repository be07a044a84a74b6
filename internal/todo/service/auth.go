package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
	"github.com/aussiebroadwan/tasktab/pkg/jwtx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// AuthService handles credential verification and session-token issuance
// for both principal variants. The signer is the only component that ever
// mints tokens; everything else just verifies.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Register creates a user account and logs it straight in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	email = normalizeEmail(email)

	user := domain.User{
		ID:    idx.New().String(),
		Name:  strings.TrimSpace(name),
		Email: email,
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}
	user.PasswordHash = hash

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", err
	}

	token, err := s.Signer.Sign(user.ID, jwtx.RoleUser)
	if err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// LoginUser verifies a user's credentials and issues a session token with
// the user role claim. Unknown email and wrong password produce the same
// error.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Signer.Sign(user.ID, jwtx.RoleUser)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

// LoginAdmin verifies an admin's credentials and issues a session token
// with the admin role claim.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (domain.Admin, string, error) {
	admin, err := s.Store.Admins().GetAdminByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, "", ErrInvalidCredentials
		}
		return domain.Admin{}, "", err
	}

	if cryptox.VerifyPassword(password, admin.PasswordHash) != nil {
		return domain.Admin{}, "", ErrInvalidCredentials
	}

	token, err := s.Signer.Sign(admin.ID, jwtx.RoleAdmin)
	if err != nil {
		return domain.Admin{}, "", err
	}

	return admin, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
