package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/tasktab/internal/todo/store"
)

// DefaultHousekeepingInterval is how often expired reset tokens are purged.
const DefaultHousekeepingInterval = time.Hour

// Housekeeper periodically deletes expired password-reset tokens. Expired
// tokens are already unredeemable, this just keeps the table from growing
// without bound.
type Housekeeper struct {
	Store    store.Store
	Interval time.Duration
	Logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start launches the background sweep loop.
func (h *Housekeeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan struct{})

	interval := h.Interval
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}

	go func() {
		defer close(h.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.sweep(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for any in-flight sweep to finish.
func (h *Housekeeper) Stop() {
	h.once.Do(func() {
		if h.cancel != nil {
			h.cancel()
			<-h.done
		}
	})
}

func (h *Housekeeper) sweep(ctx context.Context) {
	if err := h.Store.ResetTokens().DeleteExpiredResetTokens(ctx); err != nil && ctx.Err() == nil {
		h.logger().Warn("reset token sweep failed", "error", err)
	}
}

func (h *Housekeeper) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
