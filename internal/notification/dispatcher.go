package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/pawconnect-server/internal/config"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

// ErrQueueFull is returned by Notify when no queue slot is free.
var ErrQueueFull = errors.New("notification queue is full")

var _ model.Notifier = (*Dispatcher)(nil)

// Dispatcher renders notifications on the caller's goroutine and hands the
// messages to a pool of workers for delivery.
type Dispatcher struct {
	renderer *Renderer
	sender   Sender
	queue    chan Message
	workers  int
	timeout  time.Duration
	logger   *logger.Logger
}

func NewDispatcher(renderer *Renderer, sender Sender, cfg config.Notification, logger *logger.Logger) *Dispatcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	size := cfg.QueueSize
	if size < 1 {
		size = 1
	}
	return &Dispatcher{
		renderer: renderer,
		sender:   sender,
		queue:    make(chan Message, size),
		workers:  workers,
		timeout:  cfg.SendTimeout,
		logger:   logger,
	}
}

// Notify queues n for delivery. It never blocks on the sender.
func (d *Dispatcher) Notify(_ context.Context, n model.Notification) error {
	msg, err := d.renderer.Render(n)
	if err != nil {
		return err
	}

	select {
	case d.queue <- msg:
		d.logger.Debug("Notification: message queued",
			"kind", n.Kind,
			"to", n.To)
		return nil
	default:
		return fmt.Errorf("queue %s notification for %s: %w", n.Kind, n.To, ErrQueueFull)
	}
}

// Run delivers queued messages until ctx is done, then flushes what is
// already queued and returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Notification: dispatcher started", "workers", d.workers)

	g := new(errgroup.Group)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			d.work(ctx)
			return nil
		})
	}
	err := g.Wait()

	d.logger.Info("Notification: dispatcher stopped")
	return err
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case msg := <-d.queue:
			d.send(ctx, msg)
		case <-ctx.Done():
			d.drain(ctx)
			return
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case msg := <-d.queue:
			d.send(ctx, msg)
		default:
			return
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, msg Message) {
	sendCtx := context.WithoutCancel(ctx)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sendCtx, d.timeout)
		defer cancel()
	}

	if err := d.sender.Send(sendCtx, msg); err != nil {
		d.logger.Warn("Notification: delivery failed",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err.Error())
		return
	}

	d.logger.Debug("Notification: message delivered",
		"to", msg.To,
		"subject", msg.Subject)
}
