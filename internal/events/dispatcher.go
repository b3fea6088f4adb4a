package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Dispatcher publishes events off the request path. Events are queued in a
// bounded buffer and dropped when it is full.
type Dispatcher struct {
	pub     Publisher
	queue   chan *Submission
	logger  *slog.Logger
	dropped atomic.Int64
	sent    atomic.Int64
	failed  atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher creates a dispatcher with the given queue size.
func NewDispatcher(pub Publisher, size int, logger *slog.Logger) *Dispatcher {
	if pub == nil {
		pub = Noop{}
	}
	if size <= 0 {
		size = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		pub:    pub,
		queue:  make(chan *Submission, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Submit queues s without blocking. It reports whether s was accepted.
func (d *Dispatcher) Submit(s *Submission) bool {
	select {
	case <-d.done:
		d.dropped.Add(1)
		return false
	default:
	}
	select {
	case d.queue <- s:
		return true
	default:
		d.dropped.Add(1)
		return false
	}
}

// Run drains the queue until ctx is done, then flushes what is left.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case s := <-d.queue:
			d.publish(ctx, s)
		case <-ctx.Done():
			d.closeOnce.Do(func() { close(d.done) })
			d.flush()
			return nil
		}
	}
}

func (d *Dispatcher) flush() {
	for {
		select {
		case s := <-d.queue:
			d.publish(context.Background(), s)
		default:
			return
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, s *Submission) {
	if err := d.pub.Publish(context.WithoutCancel(ctx), s); err != nil {
		d.failed.Add(1)
		d.logger.Warn("Failed to publish submission event",
			"component", "events",
			"id", s.ID,
			"endpoint", s.Endpoint,
			"error", err)
		return
	}
	d.sent.Add(1)
}

// Stats returns counters of sent, failed and dropped events.
func (d *Dispatcher) Stats() (sent, failed, dropped int64) {
	return d.sent.Load(), d.failed.Load(), d.dropped.Load()
}

// Close closes the underlying publisher.
func (d *Dispatcher) Close() error {
	return d.pub.Close()
}
