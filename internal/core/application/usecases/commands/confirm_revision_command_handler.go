package commands

import (
	"context"
	"log/slog"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// ConfirmRevisionCommandHandler applies a pending revision and moves the
// order back to APPROVED.
type ConfirmRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   eventNotifier
}

func NewConfirmRevisionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ConfirmRevisionCommandHandler {
	return ConfirmRevisionCommandHandler{
		uowFactory: uowFactory,
		notifier:   newEventNotifier(publisher, logger),
	}
}

func (h ConfirmRevisionCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmRevisionCommand,
) (order.LineItemQuantityChange, error) {
	if err := cmd.Validate(); err != nil {
		return order.LineItemQuantityChange{}, err
	}

	var change order.LineItemQuantityChange
	previous := order.Unknown

	o, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		previous = o.State()
		var confirmErr error
		change, confirmErr = o.ConfirmRevision(cmd.Revision())
		return confirmErr
	})
	if err != nil {
		return order.LineItemQuantityChange{}, err
	}

	h.notifier.notify(ctx, o, order.ConfirmRevision.String(), previous, &change)
	return change, nil
}
