package mail

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (c *captureSender) Send(_ context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return c.err
}

func TestDispatcherDeliversInBackground(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	d := NewDispatcher(sender, slog.Default())
	d.Start()

	d.Enqueue(Message{To: "ann@x.com", Kind: KindTaskAdded, Data: map[string]string{"title": "groceries"}})
	d.Enqueue(Message{To: "ann@x.com", Kind: KindTaskDeleted, Data: map[string]string{"title": "groceries"}})
	d.Stop()

	require.Len(t, sender.sent, 2)
	require.Equal(t, KindTaskAdded, sender.sent[0].Kind)
	require.Equal(t, KindTaskDeleted, sender.sent[1].Kind)
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	t.Parallel()

	sender := &captureSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, slog.Default())
	d.Start()

	// Must not panic or propagate anywhere.
	d.Enqueue(Message{To: "ann@x.com", Kind: KindPasswordReset})
	d.Stop()

	require.Len(t, sender.sent, 1)
}

func TestRenderPasswordReset(t *testing.T) {
	t.Parallel()

	subject, body := render(Message{
		Kind: KindPasswordReset,
		Data: map[string]string{"token": "opaque-token", "expires_in": "30m"},
	})
	require.Equal(t, "Password reset requested", subject)
	require.Contains(t, body, "opaque-token")
	require.Contains(t, body, "30m")
}
