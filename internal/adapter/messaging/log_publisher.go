package messaging

import (
	"context"
	"log/slog"

	"github.com/rl1809/food-order/internal/core/domain"
)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.OrderEvent) error {
	p.logger.Info("order event",
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.Int64("order_id", event.OrderID),
		slog.String("status", string(event.Status)))
	return nil
}
