package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultQueueSize = 64
	sendTimeout      = 15 * time.Second
)

// Dispatcher decouples request handling from delivery: Enqueue never blocks
// the caller, and a single worker drains the queue in the background.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger

	queue chan Message
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sender: sender,
		logger: logger,
		queue:  make(chan Message, defaultQueueSize),
	}
}

// Start launches the background worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop closes the queue and waits for the worker to drain it.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

// Enqueue hands a message to the background worker. When the queue is full
// the message is dropped and logged; notifications are best-effort and
// must never block a request.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("mail queue full, dropping notification",
			"kind", msg.Kind, "to", msg.To)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.logger.Error("mail delivery failed",
				"kind", msg.Kind, "to", msg.To, "err", err)
		}
		cancel()
	}
}
