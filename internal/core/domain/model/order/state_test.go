package order_test

import (
	"fmt"
	"testing"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transitionTable = map[order.State]map[order.Operation]order.State{
	order.ApprovalPending: {order.Approve: order.Approved, order.Reject: order.Rejected},
	order.Approved:        {order.Cancel: order.CancelPending, order.Revise: order.RevisionPending},
	order.CancelPending:   {order.UndoPendingCancel: order.Approved, order.NoteCancelled: order.Cancelled},
	order.RevisionPending: {order.RejectRevision: order.Approved, order.ConfirmRevision: order.Approved},
	order.Rejected:        {},
	order.Cancelled:       {},
}

func TestState_Transition(t *testing.T) {
	for _, state := range order.States() {
		for _, op := range order.Operations() {
			expected, allowed := transitionTable[state][op]

			t.Run(fmt.Sprintf("%s_%s", state, op), func(t *testing.T) {
				next, err := state.Transition(op)

				if allowed {
					require.NoError(t, err)
					assert.Equal(t, expected, next)
					assert.True(t, state.CanTransition(op))
					return
				}

				require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
				var unsupported *order.UnsupportedStateTransitionError
				require.ErrorAs(t, err, &unsupported)
				assert.Equal(t, state, unsupported.State)
				assert.Equal(t, op, unsupported.Operation)
				assert.Equal(t, state, next)
				assert.False(t, state.CanTransition(op))
			})
		}
	}
}

func TestState_EveryStateIsCovered(t *testing.T) {
	for _, state := range order.States() {
		_, ok := transitionTable[state]
		assert.True(t, ok, "state %s is missing from the transition table", state)
	}
}

func TestState_TransitionFromUnknown(t *testing.T) {
	_, err := order.Unknown.Transition(order.Approve)

	require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
}

func TestState_UnknownOperation(t *testing.T) {
	_, err := order.Approved.Transition(order.UnknownOperation)

	require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
}

func TestState_IsTerminal(t *testing.T) {
	terminal := map[order.State]bool{order.Rejected: true, order.Cancelled: true}

	for _, state := range order.States() {
		assert.Equal(t, terminal[state], state.IsTerminal(), state.String())
	}
	assert.False(t, order.Unknown.IsTerminal())
}

func TestState_StringAndParse(t *testing.T) {
	expected := map[order.State]string{
		order.ApprovalPending: "APPROVAL_PENDING",
		order.Approved:        "APPROVED",
		order.Rejected:        "REJECTED",
		order.RevisionPending: "REVISION_PENDING",
		order.CancelPending:   "CANCEL_PENDING",
		order.Cancelled:       "CANCELLED",
	}

	for state, str := range expected {
		t.Run(str, func(t *testing.T) {
			assert.Equal(t, str, state.String())

			parsed, err := order.ParseState(str)
			require.NoError(t, err)
			assert.Equal(t, state, parsed)
		})
	}

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, s := range []string{"", "UNKNOWN", "approved", "DELIVERED"} {
			_, err := order.ParseState(s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})

	t.Run("out of range value prints UNKNOWN", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.State(99).String())
	})
}

func TestState_Validate(t *testing.T) {
	for _, state := range order.States() {
		require.NoError(t, state.Validate())
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.State(42).Validate(), errs.ErrValueIsInvalid)
}

func TestOperation_Parse(t *testing.T) {
	for _, op := range order.Operations() {
		parsed, err := order.ParseOperation(op.String())

		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	_, err := order.ParseOperation("deliver")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseOperation("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUnsupportedStateTransitionError_Message(t *testing.T) {
	err := order.NewUnsupportedStateTransitionError(order.Cancelled, order.Approve)

	assert.Equal(t, "unsupported state transition: cannot approve an order in state CANCELLED", err.Error())
}
