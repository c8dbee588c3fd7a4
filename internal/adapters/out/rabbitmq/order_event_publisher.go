// Package rabbitmq publishes order events to a topic exchange. The routing
// key is "order.<operation>", e.g. "order.approve", so consumers can bind to
// "order.#" or to single operations.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderservice/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

type OrderEventPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
}

// Dial opens a connection and a channel and declares the durable topic
// exchange.
func Dial(url, exchange string) (*OrderEventPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := newOrderEventPublisher(ch, exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newOrderEventPublisher(ch channel, exchange string) (*OrderEventPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &OrderEventPublisher{channel: ch, exchange: exchange}, nil
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(event), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    fmt.Sprintf("%s-%d", event.OrderID, event.Version),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to exchange %s: %w", p.exchange, err)
	}
	return nil
}

func RoutingKey(event ports.OrderEvent) string {
	return "order." + event.Operation
}

func (p *OrderEventPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); err == nil {
			err = connErr
		}
	}
	return err
}
