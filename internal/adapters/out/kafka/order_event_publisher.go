// Package kafka publishes order events to a Kafka topic. Messages are keyed
// by order id so every event of one order lands on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"orderservice/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

type OrderEventPublisher struct {
	writer messageWriter
}

// NewOrderEventPublisher connects to the comma-separated broker list.
func NewOrderEventPublisher(brokersCSV, topic string) *OrderEventPublisher {
	return newOrderEventPublisher(&kafka.Writer{
		Addr:         kafka.TCP(splitBrokers(brokersCSV)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	})
}

func newOrderEventPublisher(writer messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "operation", Value: []byte(event.Operation)},
		},
	})
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func splitBrokers(brokersCSV string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
