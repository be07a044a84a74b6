package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tasktab/internal/todo/mail"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
)

// capturingDispatcher collects enqueued messages without delivering them.
func newCapturingDispatcher(t *testing.T) (*mail.Dispatcher, *capturingSender) {
	t.Helper()

	sender := &capturingSender{msgs: make(chan mail.Message, 8)}
	d := mail.NewDispatcher(sender, nil)
	d.Start()
	t.Cleanup(d.Stop)
	return d, sender
}

type capturingSender struct {
	msgs chan mail.Message
}

func (c *capturingSender) Send(_ context.Context, msg mail.Message) error {
	c.msgs <- msg
	return nil
}

func (c *capturingSender) waitForMessage(t *testing.T) mail.Message {
	t.Helper()

	select {
	case msg := <-c.msgs:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no mail delivered in time")
		return mail.Message{}
	}
}

func TestRequestReset(t *testing.T) {
	st := newTestStore(t)
	dispatcher, sender := newCapturingDispatcher(t)
	svc := &ResetService{Store: st, Mail: dispatcher}
	ctx := context.Background()

	user := createTestUser(t, st, "reset@example.com", "old-password")

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		require.NoError(t, svc.RequestReset(ctx, "ghost@example.com"))
	})

	t.Run("known email issues a redeemable token", func(t *testing.T) {
		require.NoError(t, svc.RequestReset(ctx, "Reset@Example.com"))

		msg := sender.waitForMessage(t)
		require.Equal(t, user.Email, msg.To)
		require.Equal(t, mail.KindPasswordReset, msg.Kind)
		require.NotEmpty(t, msg.Data["token"])

		require.NoError(t, svc.ConsumeReset(ctx, msg.Data["token"], "new-password"))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("new-password", got.PasswordHash))
	})
}

func TestConsumeResetSingleUse(t *testing.T) {
	st := newTestStore(t)
	dispatcher, sender := newCapturingDispatcher(t)
	svc := &ResetService{Store: st, Mail: dispatcher}
	ctx := context.Background()

	createTestUser(t, st, "once@example.com", "old-password")
	require.NoError(t, svc.RequestReset(ctx, "once@example.com"))
	token := sender.waitForMessage(t).Data["token"]

	require.NoError(t, svc.ConsumeReset(ctx, token, "first-new"))

	t.Run("second redemption fails", func(t *testing.T) {
		err := svc.ConsumeReset(ctx, token, "second-new")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("first password change sticks", func(t *testing.T) {
		user, err := st.Users().GetUserByEmail(ctx, "once@example.com")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("first-new", user.PasswordHash))
	})
}

func TestConsumeResetExpired(t *testing.T) {
	st := newTestStore(t)
	dispatcher, sender := newCapturingDispatcher(t)
	svc := &ResetService{Store: st, Mail: dispatcher, TokenTTL: -time.Minute}
	ctx := context.Background()

	createTestUser(t, st, "late@example.com", "old-password")
	require.NoError(t, svc.RequestReset(ctx, "late@example.com"))
	token := sender.waitForMessage(t).Data["token"]

	err := svc.ConsumeReset(ctx, token, "too-late")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestRequestResetInvalidatesPriorTokens(t *testing.T) {
	st := newTestStore(t)
	dispatcher, sender := newCapturingDispatcher(t)
	svc := &ResetService{Store: st, Mail: dispatcher}
	ctx := context.Background()

	createTestUser(t, st, "again@example.com", "old-password")

	require.NoError(t, svc.RequestReset(ctx, "again@example.com"))
	first := sender.waitForMessage(t).Data["token"]

	require.NoError(t, svc.RequestReset(ctx, "again@example.com"))
	second := sender.waitForMessage(t).Data["token"]

	t.Run("older token no longer redeems", func(t *testing.T) {
		require.ErrorIs(t, svc.ConsumeReset(ctx, first, "via-first"), ErrInvalidResetToken)
	})

	t.Run("latest token redeems", func(t *testing.T) {
		require.NoError(t, svc.ConsumeReset(ctx, second, "via-second"))
	})
}

func TestConsumeResetGarbageToken(t *testing.T) {
	st := newTestStore(t)
	svc := &ResetService{Store: st}

	err := svc.ConsumeReset(context.Background(), "not-a-real-token", "whatever")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}
