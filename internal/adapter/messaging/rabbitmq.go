// Package messaging publishes order events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rl1809/food-order/internal/core/domain"
)

const (
	OrdersExchange = "orders_topic"
	dialRetries    = 5
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher sends each event to the orders topic exchange with routing key
// "order.<event type>". amqp channels are not safe for concurrent publishing, so calls are
// serialized.
type RabbitPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     channel
	logger *slog.Logger
}

func DialRabbit(url string, logger *slog.Logger) (*RabbitPublisher, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	for i := 0; i < dialRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		wait := time.Duration(i+1) * time.Second
		logger.Warn("rabbitmq connection failed, retrying",
			slog.Duration("wait", wait), slog.String("error", err.Error()))
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq after %d attempts: %w", dialRetries, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitPublisher{conn: conn, ch: ch, logger: logger}, nil
}

func RoutingKey(t domain.OrderEventType) string {
	return "order." + string(t)
}

func (p *RabbitPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, OrdersExchange, RoutingKey(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	p.logger.Debug("event published",
		slog.String("event_id", event.ID),
		slog.String("routing_key", RoutingKey(event.Type)))
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		p.logger.Warn("close rabbitmq channel", slog.String("error", err.Error()))
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
