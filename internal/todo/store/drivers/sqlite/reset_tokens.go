package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, user_id, token_hash, expires_at, consumed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, now, now)
	return mapConstraint(err)
}

// ConsumeResetToken flips consumed in one conditional UPDATE. Under racing
// consumption attempts only one statement matches; the loser observes zero
// affected rows and gets ErrNotFound. A read-then-write here would not be
// safe.
func (r *resetTokensRepo) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.ResetToken, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET consumed = 1, updated_at = ?
		 WHERE token_hash = ? AND consumed = 0 AND expires_at > ?`,
		now, tokenHash, now)
	if err != nil {
		return domain.ResetToken{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.ResetToken{}, err
	}
	if n == 0 {
		return domain.ResetToken{}, store.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, consumed, created_at, updated_at
		 FROM reset_tokens WHERE token_hash = ?`, tokenHash)

	var t domain.ResetToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt,
		&t.Consumed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *resetTokensRepo) InvalidateUserResetTokens(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET consumed = 1, updated_at = ?
		 WHERE user_id = ? AND consumed = 0`,
		time.Now().UTC(), userID)
	return err
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
