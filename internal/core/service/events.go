package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

const publishTimeout = 5 * time.Second

// EventDispatcher queues committed order events for background publishing. Emit never
// blocks a request: when the queue is full the event is dropped and logged.
type EventDispatcher struct {
	mu     sync.RWMutex
	closed bool
	queue  chan domain.OrderEvent
	logger *slog.Logger
}

func NewEventDispatcher(queueSize int, logger *slog.Logger) *EventDispatcher {
	return &EventDispatcher{
		queue:  make(chan domain.OrderEvent, queueSize),
		logger: logger,
	}
}

func (d *EventDispatcher) Emit(event domain.OrderEvent) {
	if d == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("event queue full, dropping event",
			slog.String("event_type", string(event.Type)),
			slog.Int64("order_id", event.OrderID))
	}
}

func (d *EventDispatcher) Events() <-chan domain.OrderEvent {
	return d.queue
}

func (d *EventDispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
}

// PublishLoop drains events until the channel is closed. Publish failures are logged and
// the event is dropped.
func PublishLoop(id int, events <-chan domain.OrderEvent, publisher port.EventPublisher, logger *slog.Logger) {
	for event := range events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)

		if err := publisher.Publish(ctx, event); err != nil {
			logger.Error("failed to publish order event",
				slog.Int("worker", id),
				slog.String("event_id", event.ID),
				slog.Int64("order_id", event.OrderID),
				slog.String("error", err.Error()))
		} else {
			logger.Debug("published order event",
				slog.Int("worker", id),
				slog.String("event_id", event.ID),
				slog.String("event_type", string(event.Type)))
		}

		cancel()
	}
}
