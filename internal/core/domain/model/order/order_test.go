package order_test

import (
	"testing"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	consumerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	t.Run("should start in approval pending", func(t *testing.T) {
		o, err := order.NewOrder(consumerID, restaurantID, sampleItems(t))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.ApprovalPending, o.State())
		assert.True(t, o.ID().IsZero())
		assert.Equal(t, int64(0), o.Version())
		assert.True(t, o.ConsumerID().IsEqual(consumerID))
		assert.True(t, o.RestaurantID().IsEqual(restaurantID))
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(20)))
		assert.True(t, o.OrderMinimum().Equal(kernel.MaxOrderMinimum))
		assert.Len(t, o.LineItems(), 2)

		_, hasDelivery := o.DeliveryInformation()
		assert.False(t, hasDelivery)
		_, hasPayment := o.PaymentInformation()
		assert.False(t, hasPayment)
	})

	t.Run("should apply options", func(t *testing.T) {
		di := mustDeliveryInformation(t, "1 Main St", time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC))
		pi, err := order.NewPaymentInformation("tok_visa")
		require.NoError(t, err)

		o, err := order.NewOrder(consumerID, restaurantID, sampleItems(t),
			order.WithOrderMinimum(kernel.NewMoneyFromInt(15)),
			order.WithDeliveryInformation(di),
			order.WithPaymentInformation(pi),
		)

		require.NoError(t, err)
		assert.True(t, o.OrderMinimum().Equal(kernel.NewMoneyFromInt(15)))
		gotDI, ok := o.DeliveryInformation()
		require.True(t, ok)
		assert.True(t, gotDI.IsEqual(di))
		gotPI, ok := o.PaymentInformation()
		require.True(t, ok)
		assert.Equal(t, "tok_visa", gotPI.PaymentToken())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, nil,
			order.WithOrderMinimum(kernel.NewMoneyFromInt(-1)))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "consumerId")
		assert.Contains(t, err.Error(), "restaurantId")
		assert.Contains(t, err.Error(), "lineItems")
		assert.Contains(t, err.Error(), "orderMinimum")
	})

	t.Run("should reject unconstructed delivery information", func(t *testing.T) {
		_, err := order.NewOrder(consumerID, restaurantID, sampleItems(t),
			order.WithDeliveryInformation(order.DeliveryInformation{}))

		require.ErrorIs(t, err, order.ErrDeliveryInformationIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	params := order.RestoreParams{
		ID:           id,
		Version:      7,
		State:        order.RevisionPending,
		ConsumerID:   kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
		LineItems:    sampleItems(t),
		OrderMinimum: kernel.NewMoneyFromInt(15),
	}

	t.Run("should restore any valid state", func(t *testing.T) {
		o, err := order.RestoreOrder(params)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, int64(7), o.Version())
		assert.Equal(t, order.RevisionPending, o.State())
	})

	t.Run("should reject unknown state and missing id", func(t *testing.T) {
		p := params
		p.ID = kernel.UUID{}
		p.State = order.Unknown

		_, err := order.RestoreOrder(p)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	zero := &order.Order{}
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestOrder_IdentityAndVersion(t *testing.T) {
	t.Run("should assign id once", func(t *testing.T) {
		o := newOrder(t)
		id := kernel.NewUUID()

		require.NoError(t, o.AssignID(id))
		require.NoError(t, o.AssignID(id))
		require.ErrorIs(t, o.AssignID(kernel.NewUUID()), errs.ErrValueIsInvalid)
		assert.True(t, o.ID().IsEqual(id))
	})

	t.Run("should never move version backwards", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.SetVersion(3))
		require.ErrorIs(t, o.SetVersion(2), errs.ErrVersionIsInvalid)
		assert.Equal(t, int64(3), o.Version())
	})

	t.Run("should compare by id", func(t *testing.T) {
		a, b := newOrder(t), newOrder(t)
		assert.False(t, a.IsEqual(b))

		id := kernel.NewUUID()
		require.NoError(t, a.AssignID(id))
		require.NoError(t, b.AssignID(id))
		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(nil))
	})
}

func TestOrder_ApproveAndReject(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Approve())
		assert.Equal(t, order.Approved, o.State())
	})

	t.Run("reject is terminal", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Reject())
		assert.Equal(t, order.Rejected, o.State())

		for _, call := range simpleOperations(o) {
			require.ErrorIs(t, call(), order.ErrUnsupportedStateTransition)
		}
		assert.Equal(t, order.Rejected, o.State())
	})

	t.Run("approve twice fails", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Approve())

		err := o.Approve()

		require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
		assert.Equal(t, order.Approved, o.State())
	})
}

func TestOrder_CancelFlow(t *testing.T) {
	t.Run("undo pending cancel returns to approved", func(t *testing.T) {
		o := approvedOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.CancelPending, o.State())

		require.NoError(t, o.UndoPendingCancel())
		assert.Equal(t, order.Approved, o.State())
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(20)))
		assert.Equal(t, 2, quantityOf(t, o.LineItems(), "A"))
		assert.Len(t, o.LineItems(), 2)
	})

	t.Run("note cancelled is terminal", func(t *testing.T) {
		o := approvedOrder(t)
		require.NoError(t, o.Cancel())

		require.NoError(t, o.NoteCancelled())
		assert.Equal(t, order.Cancelled, o.State())

		for _, call := range simpleOperations(o) {
			require.ErrorIs(t, call(), order.ErrUnsupportedStateTransition)
		}
		_, err := o.Revise(mustRevision(t, nil, nil))
		require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
		assert.Equal(t, order.Cancelled, o.State())
	})

	t.Run("cancel before approval fails", func(t *testing.T) {
		o := newOrder(t)

		err := o.Cancel()

		var unsupported *order.UnsupportedStateTransitionError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, order.ApprovalPending, unsupported.State)
		assert.Equal(t, order.Cancel, unsupported.Operation)
		assert.Equal(t, order.ApprovalPending, o.State())
	})
}

func TestOrder_Revise(t *testing.T) {
	t.Run("should move to revision pending without touching items", func(t *testing.T) {
		o := approvedOrder(t, withMinimum(15))

		change, err := o.Revise(mustRevision(t, nil, map[string]int{"A": 0}))

		require.NoError(t, err)
		assert.Equal(t, order.RevisionPending, o.State())
		assert.True(t, change.CurrentOrderTotal.Equal(kernel.NewMoneyFromInt(20)))
		assert.True(t, change.NewOrderTotal.Equal(kernel.NewMoneyFromInt(10)))
		assert.True(t, change.Delta.Equal(kernel.NewMoneyFromInt(-10)))
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(20)))
		assert.Equal(t, 2, quantityOf(t, o.LineItems(), "A"))
	})

	t.Run("should fail when revised total reaches the minimum", func(t *testing.T) {
		o := approvedOrder(t, withMinimum(8))

		_, err := o.Revise(mustRevision(t, nil, map[string]int{"A": 0}))

		require.ErrorIs(t, err, order.ErrOrderMinimumNotMet)
		var notMet *order.OrderMinimumNotMetError
		require.ErrorAs(t, err, &notMet)
		assert.True(t, notMet.NewOrderTotal.Equal(kernel.NewMoneyFromInt(10)))
		assert.True(t, notMet.OrderMinimum.Equal(kernel.NewMoneyFromInt(8)))
		assert.Equal(t, order.Approved, o.State())
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(20)))
	})

	t.Run("should fail when revised total equals the minimum", func(t *testing.T) {
		o := approvedOrder(t, withMinimum(10))

		_, err := o.Revise(mustRevision(t, nil, map[string]int{"A": 0}))

		require.ErrorIs(t, err, order.ErrOrderMinimumNotMet)
		assert.Equal(t, order.Approved, o.State())
	})

	t.Run("default minimum admits ordinary totals", func(t *testing.T) {
		o := approvedOrder(t)

		_, err := o.Revise(mustRevision(t, nil, map[string]int{"B": 5}))

		require.NoError(t, err)
		assert.Equal(t, order.RevisionPending, o.State())
	})

	t.Run("should reject unknown line items", func(t *testing.T) {
		o := approvedOrder(t, withMinimum(15))

		_, err := o.Revise(mustRevision(t, nil, map[string]int{"C": 1}))

		require.ErrorIs(t, err, order.ErrInvalidRevision)
		assert.Equal(t, order.Approved, o.State())
	})

	t.Run("should check the state first", func(t *testing.T) {
		o := newOrder(t)

		_, err := o.Revise(mustRevision(t, nil, map[string]int{"C": 1}))

		require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
		assert.Equal(t, order.ApprovalPending, o.State())
	})

	t.Run("cannot revise twice", func(t *testing.T) {
		o := approvedOrder(t)
		revision := mustRevision(t, nil, map[string]int{"A": 1})
		_, err := o.Revise(revision)
		require.NoError(t, err)

		_, err = o.Revise(revision)

		require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
		assert.Equal(t, order.RevisionPending, o.State())
	})
}

func TestOrder_ConfirmRevision(t *testing.T) {
	t.Run("should apply quantities", func(t *testing.T) {
		o := approvedOrder(t, withMinimum(15))
		revision := mustRevision(t, nil, map[string]int{"A": 0})
		_, err := o.Revise(revision)
		require.NoError(t, err)

		change, err := o.ConfirmRevision(revision)

		require.NoError(t, err)
		assert.Equal(t, order.Approved, o.State())
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(10)))
		assert.True(t, change.NewOrderTotal.Equal(kernel.NewMoneyFromInt(10)))
		assert.Equal(t, 0, quantityOf(t, o.LineItems(), "A"))
		assert.Equal(t, 1, quantityOf(t, o.LineItems(), "B"))
	})

	t.Run("should replace delivery information when supplied", func(t *testing.T) {
		original := mustDeliveryInformation(t, "1 Main St", time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC))
		replacement := mustDeliveryInformation(t, "9 Side St", time.Date(2026, 1, 2, 19, 30, 0, 0, time.UTC))
		o := approvedOrder(t, order.WithDeliveryInformation(original))
		revision := mustRevision(t, &replacement, nil)
		_, err := o.Revise(revision)
		require.NoError(t, err)

		_, err = o.ConfirmRevision(revision)

		require.NoError(t, err)
		di, ok := o.DeliveryInformation()
		require.True(t, ok)
		assert.True(t, di.IsEqual(replacement))
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(20)))
	})

	t.Run("should keep delivery information when absent", func(t *testing.T) {
		original := mustDeliveryInformation(t, "1 Main St", time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC))
		o := approvedOrder(t, order.WithDeliveryInformation(original))
		revision := mustRevision(t, nil, map[string]int{"B": 2})
		_, err := o.Revise(revision)
		require.NoError(t, err)

		_, err = o.ConfirmRevision(revision)

		require.NoError(t, err)
		di, ok := o.DeliveryInformation()
		require.True(t, ok)
		assert.True(t, di.IsEqual(original))
		assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(30)))
	})

	t.Run("should fail outside revision pending", func(t *testing.T) {
		o := approvedOrder(t)

		_, err := o.ConfirmRevision(mustRevision(t, nil, map[string]int{"A": 0}))

		require.ErrorIs(t, err, order.ErrUnsupportedStateTransition)
		assert.Equal(t, order.Approved, o.State())
		assert.Equal(t, 2, quantityOf(t, o.LineItems(), "A"))
	})

	t.Run("should leave order untouched on unknown line item", func(t *testing.T) {
		o := approvedOrder(t)
		_, err := o.Revise(mustRevision(t, nil, map[string]int{"A": 1}))
		require.NoError(t, err)

		_, err = o.ConfirmRevision(mustRevision(t, nil, map[string]int{"A": 0, "Z": 1}))

		require.ErrorIs(t, err, order.ErrInvalidRevision)
		assert.Equal(t, order.RevisionPending, o.State())
		assert.Equal(t, 2, quantityOf(t, o.LineItems(), "A"))
	})
}

func TestOrder_RejectRevision(t *testing.T) {
	o := approvedOrder(t, withMinimum(15))
	_, err := o.Revise(mustRevision(t, nil, map[string]int{"A": 0}))
	require.NoError(t, err)

	require.NoError(t, o.RejectRevision())

	assert.Equal(t, order.Approved, o.State())
	assert.True(t, o.OrderTotal().Equal(kernel.NewMoneyFromInt(20)))
	assert.Equal(t, 2, quantityOf(t, o.LineItems(), "A"))

	require.ErrorIs(t, o.RejectRevision(), order.ErrUnsupportedStateTransition)
}

func TestOrder_LineItemsAreCopies(t *testing.T) {
	o := newOrder(t)

	items := o.LineItems()
	items[0] = mustLineItem(t, "X", 100, 100)

	assert.Equal(t, "A", o.LineItems()[0].MenuItemID())
}

func newOrder(t *testing.T, opts ...order.Option) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), sampleItems(t), opts...)
	require.NoError(t, err)
	return o
}

func approvedOrder(t *testing.T, opts ...order.Option) *order.Order {
	t.Helper()
	o := newOrder(t, opts...)
	require.NoError(t, o.Approve())
	return o
}

func withMinimum(amount int64) order.Option {
	return order.WithOrderMinimum(kernel.NewMoneyFromInt(amount))
}

// simpleOperations lists the transitions that take no arguments.
func simpleOperations(o *order.Order) []func() error {
	return []func() error{o.Approve, o.Reject, o.Cancel, o.UndoPendingCancel, o.NoteCancelled, o.RejectRevision}
}

func mustDeliveryInformation(t *testing.T, street string, at time.Time) order.DeliveryInformation {
	t.Helper()
	address, err := order.NewAddress(street, "", "Oakland", "CA", "94612")
	require.NoError(t, err)
	di, err := order.NewDeliveryInformation(at, address)
	require.NoError(t, err)
	return di
}
