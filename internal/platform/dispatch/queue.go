package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"concord/internal/shared/fanout"
)

// Queue is the bounded in-process work queue between committed workflows and
// the notification dispatcher. Publish never blocks the caller: when the
// queue is full the delivery is dropped and logged. Fan-out is best-effort;
// a committed state change never waits on it.
type Queue struct {
	mu       sync.Mutex
	ch       chan fanout.Delivery
	closed   bool
	capacity int
	logger   *slog.Logger
}

func NewQueue(capacity int, logger *slog.Logger) *Queue {
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		ch:       make(chan fanout.Delivery, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Publish enqueues a delivery without blocking. Drops are logged, never
// surfaced: a committed state change must not fail because fan-out is behind.
func (q *Queue) Publish(_ context.Context, delivery fanout.Delivery) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("delivery dropped on closed queue",
			"event", "dispatch_publish_closed",
			"module", "internal/platform/dispatch",
			"layer", "platform",
			"delivery_id", delivery.DeliveryID,
			"source", delivery.Source,
		)
		return
	}
	select {
	case q.ch <- delivery:
	default:
		q.logger.Warn("delivery dropped on full queue",
			"event", "dispatch_publish_drop",
			"module", "internal/platform/dispatch",
			"layer", "platform",
			"delivery_id", delivery.DeliveryID,
			"source", delivery.Source,
			"capacity", q.capacity,
		)
	}
}

// Subscribe consumes deliveries with handler until ctx is done. Handler
// errors are logged and consumption continues; fan-out failures never stop
// the dispatcher.
func (q *Queue) Subscribe(ctx context.Context, handler func(context.Context, fanout.Delivery) error) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-q.ch:
				if !ok {
					return
				}
				if err := handler(ctx, delivery); err != nil {
					q.logger.Error("dispatch handler failed",
						"event", "dispatch_consume_failed",
						"module", "internal/platform/dispatch",
						"layer", "platform",
						"delivery_id", delivery.DeliveryID,
						"source", delivery.Source,
						"error", err.Error(),
					)
				}
			}
		}
	}()
}

// Close stops accepting deliveries. Pending items already queued are still
// drained by the subscriber.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
