package order

import (
	"errors"
	"fmt"

	"orderservice/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrUnsupportedStateTransition is the sentinel behind UnsupportedStateTransitionError.
	ErrUnsupportedStateTransition = errors.New("unsupported state transition")

	// ErrOrderMinimumNotMet is the sentinel behind OrderMinimumNotMetError.
	ErrOrderMinimumNotMet = errors.New("order minimum not met")

	// ErrInvalidRevision is the sentinel behind InvalidRevisionError.
	ErrInvalidRevision = errors.New("invalid revision")
)

// UnsupportedStateTransitionError is returned when an operation is invoked in a
// state that does not permit it. The order is left untouched; callers should
// re-read the order before deciding what to do.
type UnsupportedStateTransitionError struct {
	State     State
	Operation Operation
}

func NewUnsupportedStateTransitionError(state State, op Operation) *UnsupportedStateTransitionError {
	return &UnsupportedStateTransitionError{State: state, Operation: op}
}

func (e *UnsupportedStateTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in state %s", ErrUnsupportedStateTransition, e.Operation, e.State)
}

func (e *UnsupportedStateTransitionError) Unwrap() error {
	return ErrUnsupportedStateTransition
}

// OrderMinimumNotMetError is returned by Revise when the revised total is
// greater than or equal to the order minimum. Retrying with the same revision
// always fails.
type OrderMinimumNotMetError struct {
	NewOrderTotal kernel.Money
	OrderMinimum  kernel.Money
}

func NewOrderMinimumNotMetError(newOrderTotal, orderMinimum kernel.Money) *OrderMinimumNotMetError {
	return &OrderMinimumNotMetError{NewOrderTotal: newOrderTotal, OrderMinimum: orderMinimum}
}

func (e *OrderMinimumNotMetError) Error() string {
	return fmt.Sprintf("%s: revised total %s, order minimum %s", ErrOrderMinimumNotMet, e.NewOrderTotal, e.OrderMinimum)
}

func (e *OrderMinimumNotMetError) Unwrap() error {
	return ErrOrderMinimumNotMet
}

// InvalidRevisionError is returned when a revision names a line item the
// order does not contain.
type InvalidRevisionError struct {
	MenuItemID string
}

func NewInvalidRevisionError(menuItemID string) *InvalidRevisionError {
	return &InvalidRevisionError{MenuItemID: menuItemID}
}

func (e *InvalidRevisionError) Error() string {
	return fmt.Sprintf("%s: line item %q is not part of the order", ErrInvalidRevision, e.MenuItemID)
}

func (e *InvalidRevisionError) Unwrap() error {
	return ErrInvalidRevision
}
