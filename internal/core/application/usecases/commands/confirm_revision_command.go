package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/guard"
)

var ErrConfirmRevisionCommandIsNotConstructed = errors.New(
	"ConfirmRevisionCommand must be created via NewConfirmRevisionCommand constructor",
)

// ConfirmRevisionCommand applies a revision proposed earlier. The caller
// passes the same revision it proposed; its effect is recomputed against the
// current line items.
type ConfirmRevisionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	revision order.OrderRevision

	guard guard.ConstructorGuard
}

func NewConfirmRevisionCommand(orderID kernel.UUID, revision order.OrderRevision) (ConfirmRevisionCommand, error) {
	cmd := ConfirmRevisionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setRevisionTarget(&cmd.orderID, orderID),
		setRevision(&cmd.revision, revision),
	); err != nil {
		return ConfirmRevisionCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmRevisionCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRevisionCommandIsNotConstructed)
}

func (c ConfirmRevisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmRevisionCommand) Revision() order.OrderRevision {
	return c.revision
}
