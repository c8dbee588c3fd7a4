package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrReviseOrderCommandIsNotConstructed = errors.New(
	"ReviseOrderCommand must be created via NewReviseOrderCommand constructor",
)

// ReviseOrderCommand proposes a revision of an approved order.
type ReviseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	revision order.OrderRevision

	guard guard.ConstructorGuard
}

func NewReviseOrderCommand(orderID kernel.UUID, revision order.OrderRevision) (ReviseOrderCommand, error) {
	cmd := ReviseOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setRevisionTarget(&cmd.orderID, orderID),
		setRevision(&cmd.revision, revision),
	); err != nil {
		return ReviseOrderCommand{}, err
	}

	return cmd, nil
}

func (c ReviseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReviseOrderCommandIsNotConstructed)
}

func (c ReviseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReviseOrderCommand) Revision() order.OrderRevision {
	return c.revision
}

func setRevisionTarget(dst *kernel.UUID, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	*dst = orderID
	return nil
}

func setRevision(dst *order.OrderRevision, revision order.OrderRevision) error {
	if err := revision.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("revision", err)
	}
	*dst = revision
	return nil
}
