package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/food-order/internal/core/domain"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	event := domain.OrderEvent{
		ID:         "evt-1",
		Type:       domain.OrderEventStatusChanged,
		OrderID:    42,
		Status:     domain.OrderStatusAccepted,
		Previous:   domain.OrderStatusPending,
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.sent, 1)
	assert.Equal(t, OrdersExchange, ch.sent[0].exchange)
	assert.Equal(t, "order.status_changed", ch.sent[0].key)
	assert.Equal(t, "evt-1", ch.sent[0].msg.MessageId)
	assert.Equal(t, amqp.Persistent, ch.sent[0].msg.DeliveryMode)

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &decoded))
	assert.Equal(t, int64(42), decoded.OrderID)
	assert.Equal(t, domain.OrderStatusPending, decoded.Previous)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	p := &RabbitPublisher{ch: &fakeChannel{err: errors.New("channel closed")}, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	err := p.Publish(context.Background(), domain.OrderEvent{Type: domain.OrderEventPlaced})
	assert.ErrorContains(t, err, "channel closed")
}
