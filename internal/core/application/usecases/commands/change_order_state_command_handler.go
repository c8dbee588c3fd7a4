package commands

import (
	"context"
	"log/slog"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// ChangeOrderStateCommandHandler runs a plain state transition. Invalid
// transitions surface as *order.UnsupportedStateTransitionError and leave the
// stored order untouched.
//
// Example:
//
//	cmd, _ := NewChangeOrderStateCommand(orderID, order.Approve)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrUnsupportedStateTransition):
//	    // re-read the order and decide again
//	case errors.Is(err, errs.ErrConcurrencyConflict):
//	    // someone else changed it first
//	}
type ChangeOrderStateCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   eventNotifier
}

func NewChangeOrderStateCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ChangeOrderStateCommandHandler {
	return ChangeOrderStateCommandHandler{
		uowFactory: uowFactory,
		notifier:   newEventNotifier(publisher, logger),
	}
}

// Handle returns the order as committed.
func (h ChangeOrderStateCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStateCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	transition := plainOperations[cmd.Operation()]
	previous := order.Unknown

	o, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		previous = o.State()
		return transition(o)
	})
	if err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, o, cmd.Operation().String(), previous, nil)
	return o, nil
}
