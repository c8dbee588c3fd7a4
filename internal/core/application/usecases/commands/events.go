package commands

import (
	"context"
	"log/slog"
	"time"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// createOperation names the event emitted for a newly placed order.
const createOperation = "create"

// eventNotifier publishes events for changes that are already committed.
// Publication errors are logged and swallowed: the change is durable and the
// caller must not retry it.
type eventNotifier struct {
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func newEventNotifier(publisher ports.OrderEventPublisher, logger *slog.Logger) eventNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return eventNotifier{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (n eventNotifier) notify(
	ctx context.Context,
	o *order.Order,
	operation string,
	previous order.State,
	change *order.LineItemQuantityChange,
) {
	if n.publisher == nil {
		return
	}

	event := newOrderEvent(o, operation, previous, change, n.now().UTC())
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.ErrorContext(ctx, "failed to publish order event",
			"orderId", event.OrderID,
			"operation", operation,
			"state", event.State,
			"error", err,
		)
		return
	}

	n.logger.DebugContext(ctx, "order event published",
		"orderId", event.OrderID,
		"operation", operation,
		"state", event.State,
	)
}

func newOrderEvent(
	o *order.Order,
	operation string,
	previous order.State,
	change *order.LineItemQuantityChange,
	occurredAt time.Time,
) ports.OrderEvent {
	event := ports.OrderEvent{
		OrderID:    o.ID().String(),
		Operation:  operation,
		State:      o.State().String(),
		Version:    o.Version(),
		OrderTotal: o.OrderTotal().String(),
		OccurredAt: occurredAt,
	}
	if previous != order.Unknown {
		event.PreviousState = previous.String()
	}

	if change != nil {
		summary := &ports.RevisionSummary{
			CurrentOrderTotal: change.CurrentOrderTotal.String(),
			NewOrderTotal:     change.NewOrderTotal.String(),
			Delta:             change.Delta.String(),
			LineItems:         make([]ports.LineItemChange, 0, len(change.LineItemDeltas)),
		}
		for _, d := range change.LineItemDeltas {
			summary.LineItems = append(summary.LineItems, ports.LineItemChange{
				MenuItemID:  d.MenuItemID,
				OldQuantity: d.OldQuantity,
				NewQuantity: d.NewQuantity,
			})
		}
		event.Revision = summary
	}

	return event
}
