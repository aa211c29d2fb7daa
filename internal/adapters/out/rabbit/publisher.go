// Package rabbit implements the lifecycle event publisher over RabbitMQ.
// Events go to a durable topic exchange; notification and analytics
// consumers bind their own queues with routing keys like "order.confirmed".
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bakeshop/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// transitionMessage is the wire format of a lifecycle event.
type transitionMessage struct {
	OrderID    string    `json:"order_id"`
	Previous   string    `json:"previous"`
	New        string    `json:"new"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes lifecycle events to a RabbitMQ topic exchange.
// It implements ports.LifecycleEventPublisher. Publishing is best-effort by
// contract: callers log and drop failures, so the publisher never retries or
// buffers on its own.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher dials RabbitMQ and declares the durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishTransition emits one committed transition with routing key
// "order.<new status>".
func (p *Publisher) PublishTransition(ctx context.Context, event ports.TransitionEvent) error {
	body, err := json.Marshal(transitionMessage{
		OrderID:    event.OrderID.String(),
		Previous:   event.Previous.String(),
		New:        event.New.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	key := "order." + event.New.String()
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
