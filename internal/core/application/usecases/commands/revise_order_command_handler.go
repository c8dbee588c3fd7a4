package commands

import (
	"context"
	"log/slog"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// ReviseOrderCommandHandler moves an approved order to REVISION_PENDING when
// the revised total passes the order-minimum check. Line items are not
// changed until the revision is confirmed.
type ReviseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   eventNotifier
}

func NewReviseOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ReviseOrderCommandHandler {
	return ReviseOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newEventNotifier(publisher, logger),
	}
}

// Handle returns the computed change so the caller can notify the consumer
// or the restaurant.
func (h ReviseOrderCommandHandler) Handle(
	ctx context.Context,
	cmd ReviseOrderCommand,
) (order.LineItemQuantityChange, error) {
	if err := cmd.Validate(); err != nil {
		return order.LineItemQuantityChange{}, err
	}

	var change order.LineItemQuantityChange
	previous := order.Unknown

	o, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		previous = o.State()
		var reviseErr error
		change, reviseErr = o.Revise(cmd.Revision())
		return reviseErr
	})
	if err != nil {
		return order.LineItemQuantityChange{}, err
	}

	h.notifier.notify(ctx, o, order.Revise.String(), previous, &change)
	return change, nil
}
