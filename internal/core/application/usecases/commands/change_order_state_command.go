package commands

import (
	"errors"
	"fmt"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrChangeOrderStateCommandIsNotConstructed = errors.New(
	"ChangeOrderStateCommand must be created via NewChangeOrderStateCommand constructor",
)

// ChangeOrderStateCommand applies one of the operations that take no
// arguments: approve, reject, cancel, undoPendingCancel, noteCancelled and
// rejectRevision. Revisions have their own commands.
type ChangeOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	operation order.Operation

	guard guard.ConstructorGuard
}

func NewChangeOrderStateCommand(orderID kernel.UUID, operation order.Operation) (ChangeOrderStateCommand, error) {
	cmd := ChangeOrderStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOperation(operation),
	); err != nil {
		return ChangeOrderStateCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStateCommandIsNotConstructed)
}

func (c ChangeOrderStateCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStateCommand) Operation() order.Operation {
	return c.operation
}

func (c *ChangeOrderStateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStateCommand) setOperation(operation order.Operation) error {
	if _, ok := plainOperations[operation]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"operation", fmt.Errorf("%s is not a plain state change", operation))
	}

	c.operation = operation
	return nil
}

var plainOperations = map[order.Operation]func(o *order.Order) error{
	order.Approve:           (*order.Order).Approve,
	order.Reject:            (*order.Order).Reject,
	order.Cancel:            (*order.Order).Cancel,
	order.UndoPendingCancel: (*order.Order).UndoPendingCancel,
	order.NoteCancelled:     (*order.Order).NoteCancelled,
	order.RejectRevision:    (*order.Order).RejectRevision,
}
