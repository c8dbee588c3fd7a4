package order

import (
	"fmt"

	"orderservice/internal/pkg/errs"
)

// State is the lifecycle state of an order.
//
// State transitions:
//
//	APPROVAL_PENDING  --approve-->            APPROVED
//	APPROVAL_PENDING  --reject-->             REJECTED
//	APPROVED          --cancel-->             CANCEL_PENDING
//	CANCEL_PENDING    --undoPendingCancel-->  APPROVED
//	CANCEL_PENDING    --noteCancelled-->      CANCELLED
//	APPROVED          --revise-->             REVISION_PENDING
//	REVISION_PENDING  --rejectRevision-->     APPROVED
//	REVISION_PENDING  --confirmRevision-->    APPROVED
//
// REJECTED and CANCELLED are terminal.
type State int

const (
	// Unknown catches uninitialized State values and is never a valid order state.
	Unknown State = iota

	// ApprovalPending is the state every order is created in.
	ApprovalPending

	// Approved orders may be cancelled or revised.
	Approved

	// Rejected is terminal.
	Rejected

	// RevisionPending holds a proposed revision until it is confirmed or rejected.
	RevisionPending

	// CancelPending holds a cancellation until it is confirmed or undone.
	CancelPending

	// Cancelled is terminal.
	Cancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:         "UNKNOWN",
		ApprovalPending: "APPROVAL_PENDING",
		Approved:        "APPROVED",
		Rejected:        "REJECTED",
		RevisionPending: "REVISION_PENDING",
		CancelPending:   "CANCEL_PENDING",
		Cancelled:       "CANCELLED",
	}
}

// States returns every valid state in declaration order.
func States() []State {
	return []State{ApprovalPending, Approved, Rejected, RevisionPending, CancelPending, Cancelled}
}

// ParseState converts the persisted string form back into a State.
func ParseState(s string) (State, error) {
	for state, str := range getStateStrings() {
		if state != Unknown && str == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// Validate rejects Unknown and any value outside the enumeration.
func (s State) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	if _, ok := getStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the persisted name of the state, e.g. "REVISION_PENDING".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no operation can leave the state.
func (s State) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}

// Operation names a transition operation of the order state machine.
type Operation int

const (
	UnknownOperation Operation = iota
	Approve
	Reject
	Cancel
	UndoPendingCancel
	NoteCancelled
	Revise
	RejectRevision
	ConfirmRevision
)

func getOperationStrings() map[Operation]string {
	return map[Operation]string{
		UnknownOperation:  "unknown",
		Approve:           "approve",
		Reject:            "reject",
		Cancel:            "cancel",
		UndoPendingCancel: "undoPendingCancel",
		NoteCancelled:     "noteCancelled",
		Revise:            "revise",
		RejectRevision:    "rejectRevision",
		ConfirmRevision:   "confirmRevision",
	}
}

// Operations returns every valid operation in declaration order.
func Operations() []Operation {
	return []Operation{Approve, Reject, Cancel, UndoPendingCancel, NoteCancelled, Revise, RejectRevision, ConfirmRevision}
}

// ParseOperation converts an operation name such as "undoPendingCancel" into an Operation.
func ParseOperation(s string) (Operation, error) {
	for op, str := range getOperationStrings() {
		if op != UnknownOperation && str == s {
			return op, nil
		}
	}
	return UnknownOperation, errs.NewValueIsInvalidErrorWithCause(
		"operation", fmt.Errorf("%q is not a valid operation", s))
}

func (op Operation) String() string {
	if str, ok := getOperationStrings()[op]; ok {
		return str
	}
	return "unknown"
}

// transitions is the single source of truth for the order state machine.
// A state that is missing here, or maps to an empty set, accepts no operation.
//
//nolint:exhaustive // Unknown accepts no operation
var transitions = map[State]map[Operation]State{
	ApprovalPending: {
		Approve: Approved,
		Reject:  Rejected,
	},
	Approved: {
		Cancel: CancelPending,
		Revise: RevisionPending,
	},
	CancelPending: {
		UndoPendingCancel: Approved,
		NoteCancelled:     Cancelled,
	},
	RevisionPending: {
		RejectRevision:  Approved,
		ConfirmRevision: Approved,
	},
	Rejected:  {},
	Cancelled: {},
}

// Transition returns the successor of s under op, or an
// *UnsupportedStateTransitionError when the table defines none.
// It never has side effects; Order applies the result.
//
// Example:
//
//	next, err := order.Approved.Transition(order.Cancel)
//	// next == order.CancelPending, err == nil
func (s State) Transition(op Operation) (State, error) {
	next, ok := transitions[s][op]
	if !ok {
		return s, NewUnsupportedStateTransitionError(s, op)
	}
	return next, nil
}

// CanTransition reports whether op is defined for s.
func (s State) CanTransition(op Operation) bool {
	_, ok := transitions[s][op]
	return ok
}
