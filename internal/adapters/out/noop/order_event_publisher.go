// Package noop provides an event publisher that drops every event. It is
// used when EVENTS_BROKER is "none".
package noop

import (
	"context"

	"orderservice/internal/core/ports"
)

var _ ports.OrderEventPublisher = OrderEventPublisher{}

type OrderEventPublisher struct{}

func (OrderEventPublisher) Publish(context.Context, ports.OrderEvent) error {
	return nil
}

func (OrderEventPublisher) Close() error {
	return nil
}
