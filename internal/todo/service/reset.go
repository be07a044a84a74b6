package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/mail"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/idx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// DefaultResetTTL is how long a password-reset token stays redeemable.
const DefaultResetTTL = 30 * time.Minute

// ResetService issues and redeems single-use password-reset tokens for
// user accounts. The raw token only ever travels by email; the store holds
// its fingerprint.
type ResetService struct {
	Store store.Store
	Mail  *mail.Dispatcher

	// TokenTTL defaults to DefaultResetTTL when zero.
	TokenTTL time.Duration
}

// RequestReset issues a fresh reset token for the account behind email. It
// always reports success to the caller; whether the email exists is never
// observable from the response. Issuing a new token invalidates any
// outstanding ones, so only the latest token can be redeemed.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deliberate no-op so the response cannot enumerate accounts.
			slogx.FromContext(ctx).Debug("reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	token := domain.ResetToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(raw),
		ExpiresAt: time.Now().UTC().Add(s.ttl()),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().InvalidateUserResetTokens(ctx, user.ID); err != nil {
			return err
		}
		return tx.ResetTokens().CreateResetToken(ctx, token)
	})
	if err != nil {
		return err
	}

	if s.Mail != nil {
		s.Mail.Enqueue(mail.Message{
			To:   user.Email,
			Kind: mail.KindPasswordReset,
			Data: map[string]string{"token": raw},
		})
	}

	slogx.FromContext(ctx).Info("password reset issued", "user_id", user.ID)
	return nil
}

// ConsumeReset redeems a reset token and sets the account's new password.
// Consumption is a single conditional mutation in the store, so a token can
// only ever be redeemed once even under concurrent attempts. Missing,
// already-consumed and expired tokens all surface as ErrInvalidResetToken.
func (s *ResetService) ConsumeReset(ctx context.Context, rawToken, newPassword string) error {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	fingerprint := cryptox.FingerprintToken(rawToken)

	var userID string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		token, err := tx.ResetTokens().ConsumeResetToken(ctx, fingerprint, time.Now().UTC())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}

		userID = token.UserID
		return tx.Users().UpdateUserPasswordHash(ctx, token.UserID, hash)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset redeemed", "user_id", userID)
	return nil
}

func (s *ResetService) ttl() time.Duration {
	if s.TokenTTL != 0 {
		return s.TokenTTL
	}
	return DefaultResetTTL
}
