package commands_test

import (
	"errors"
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStateCommandHandler_Handle_Transitions(t *testing.T) {
	testCases := []struct {
		from      order.State
		operation order.Operation
		to        order.State
	}{
		{order.ApprovalPending, order.Approve, order.Approved},
		{order.ApprovalPending, order.Reject, order.Rejected},
		{order.Approved, order.Cancel, order.CancelPending},
		{order.CancelPending, order.UndoPendingCancel, order.Approved},
		{order.CancelPending, order.NoteCancelled, order.Cancelled},
		{order.RevisionPending, order.RejectRevision, order.Approved},
	}

	for _, tc := range testCases {
		t.Run(tc.operation.String(), func(t *testing.T) {
			ctx := t.Context()
			stored := storedOrder(t, tc.from, 15)
			factory, uow, repo := expectTransaction(stored)
			repo.On("Update", mock.Anything, stored).Return(nil).Once()
			uow.On("Commit", mock.Anything).Return(nil).Once()

			publisher := new(MockOrderEventPublisher)
			publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
				return e.OrderID == stored.ID().String() &&
					e.Operation == tc.operation.String() &&
					e.PreviousState == tc.from.String() &&
					e.State == tc.to.String()
			})).Return(nil).Once()

			cmd, err := commands.NewChangeOrderStateCommand(stored.ID(), tc.operation)
			require.NoError(t, err)

			h := commands.NewChangeOrderStateCommandHandler(factory, publisher, nil)
			result, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tc.to, result.State())
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestChangeOrderStateCommandHandler_Handle_UnsupportedTransition(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Cancelled, 15)
	factory, uow, repo := expectTransaction(stored)
	publisher := new(MockOrderEventPublisher)

	cmd, err := commands.NewChangeOrderStateCommand(stored.ID(), order.Approve)
	require.NoError(t, err)

	h := commands.NewChangeOrderStateCommandHandler(factory, publisher, nil)
	_, err = h.Handle(ctx, cmd)

	var unsupported *order.UnsupportedStateTransitionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, order.Cancelled, unsupported.State)
	assert.Equal(t, order.Cancelled, stored.State())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertCalled(t, "Rollback", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestChangeOrderStateCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.ApprovalPending, 15)
	factory, uow, repo := expectTransaction(nil)
	repo.On("Get", mock.Anything, stored.ID()).
		Return(nil, errs.NewObjectNotFoundError("order", stored.ID().String())).Once()

	cmd, err := commands.NewChangeOrderStateCommand(stored.ID(), order.Approve)
	require.NoError(t, err)

	h := commands.NewChangeOrderStateCommandHandler(factory, nil, nil)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStateCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.ApprovalPending, 15)
	factory, uow, repo := expectTransaction(stored)
	conflict := errs.NewConcurrencyConflictError("order", stored.ID().String(), stored.Version())
	repo.On("Update", mock.Anything, stored).Return(conflict).Once()
	publisher := new(MockOrderEventPublisher)

	cmd, err := commands.NewChangeOrderStateCommand(stored.ID(), order.Approve)
	require.NoError(t, err)

	h := commands.NewChangeOrderStateCommandHandler(factory, publisher, nil)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestChangeOrderStateCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	cmd, err := commands.NewChangeOrderStateCommand(storedOrder(t, order.Approved, 15).ID(), order.Cancel)
	require.NoError(t, err)

	h := commands.NewChangeOrderStateCommandHandler(factory, nil, nil)
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestChangeOrderStateCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewChangeOrderStateCommandHandler(factory, nil, nil)

	_, err := h.Handle(t.Context(), commands.ChangeOrderStateCommand{})

	require.ErrorIs(t, err, commands.ErrChangeOrderStateCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
