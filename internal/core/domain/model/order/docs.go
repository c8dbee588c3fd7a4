// Package order implements the Order aggregate of the food-delivery order
// service: a strict finite-state machine guarding every change of an order's
// lifecycle, together with the line-item arithmetic revisions rely on.
//
// The package includes:
//   - Order: the aggregate root; the only way to change its state is through
//     Approve, Reject, Cancel, UndoPendingCancel, NoteCancelled, Revise,
//     RejectRevision and ConfirmRevision
//   - State and Operation: the enumerations and the transition table behind
//     State.Transition
//   - OrderLineItems: order total, the pure revision computation
//     (LineItemQuantityChange) and its application (UpdateLineItems)
//   - OrderRevision, DeliveryInformation, Address, PaymentInformation:
//     immutable value objects
//
// Key business rules:
//   - Orders start in APPROVAL_PENDING; REJECTED and CANCELLED are terminal
//   - Every operation either commits exactly one successor state or fails
//     without changing anything
//   - Revise is rejected when the revised total is greater than or equal to
//     the order minimum, and never touches quantities
//   - ConfirmRevision recomputes the change from the revision and only then
//     applies quantities and delivery information
package order
