package order

import (
	"errors"
	"fmt"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

// Order is the aggregate root of a food-delivery order. Its state only
// changes through the transition methods below, each of which routes through
// State.Transition and either commits exactly one successor state or returns
// an error leaving the order untouched.
//
// Order does no I/O and holds no locks. Identity and version are plain fields
// owned by the persistence adapter, which enforces optimistic concurrency on
// the version when the order is written back.
type Order struct {
	// id stays zero until the persistence adapter assigns it on first save
	id      kernel.UUID
	version int64

	state State

	consumerID   kernel.UUID
	restaurantID kernel.UUID

	lineItems           OrderLineItems
	deliveryInformation *DeliveryInformation
	paymentInformation  *PaymentInformation

	// orderMinimum: Revise fails when the revised total is >= this amount
	orderMinimum kernel.Money

	guard guard.ConstructorGuard
}

// Option customises an order at creation.
type Option func(o *Order) error

// WithOrderMinimum sets the amount Revise compares revised totals against.
// Without it the order carries kernel.MaxOrderMinimum.
func WithOrderMinimum(orderMinimum kernel.Money) Option {
	return func(o *Order) error {
		return o.setOrderMinimum(orderMinimum)
	}
}

func WithDeliveryInformation(deliveryInformation DeliveryInformation) Option {
	return func(o *Order) error {
		return o.setDeliveryInformation(&deliveryInformation)
	}
}

func WithPaymentInformation(paymentInformation PaymentInformation) Option {
	return func(o *Order) error {
		return o.setPaymentInformation(&paymentInformation)
	}
}

// NewOrder creates an order in ApprovalPending for a consumer at a restaurant.
// The order has no identifier until it is saved.
//
// Example:
//
//	pizza, _ := order.NewOrderLineItem("margherita", "Margherita", kernel.NewMoneyFromInt(5), 2)
//	o, err := order.NewOrder(consumerID, restaurantID, []order.OrderLineItem{pizza},
//	    order.WithOrderMinimum(kernel.NewMoneyFromInt(15)))
func NewOrder(
	consumerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []OrderLineItem,
	opts ...Option,
) (*Order, error) {
	o := &Order{
		state:        ApprovalPending,
		orderMinimum: kernel.MaxOrderMinimum,
		guard:        guard.NewConstructorGuard(),
	}

	validationErrs := []error{
		o.setConsumerID(consumerID),
		o.setRestaurantID(restaurantID),
		o.setLineItems(lineItems),
	}
	for _, opt := range opts {
		validationErrs = append(validationErrs, opt(o))
	}
	if err := errors.Join(validationErrs...); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries the persisted representation of an order.
type RestoreParams struct {
	ID                  kernel.UUID
	Version             int64
	State               State
	ConsumerID          kernel.UUID
	RestaurantID        kernel.UUID
	LineItems           []OrderLineItem
	DeliveryInformation *DeliveryInformation
	PaymentInformation  *PaymentInformation
	OrderMinimum        kernel.Money
}

// RestoreOrder rebuilds an order read from storage. It is meant for
// persistence adapters only: it may put the order in any valid state.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.AssignID(p.ID),
		o.SetVersion(p.Version),
		o.setState(p.State),
		o.setConsumerID(p.ConsumerID),
		o.setRestaurantID(p.RestaurantID),
		o.setLineItems(p.LineItems),
		o.setDeliveryInformation(p.DeliveryInformation),
		o.setPaymentInformation(p.PaymentInformation),
		o.setOrderMinimum(p.OrderMinimum),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier. Unsaved orders are never equal.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Version() int64 {
	return o.version
}

func (o *Order) State() State {
	return o.state
}

func (o *Order) ConsumerID() kernel.UUID {
	return o.consumerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// LineItems returns a copy of the line items.
func (o *Order) LineItems() []OrderLineItem {
	return o.lineItems.Items()
}

func (o *Order) OrderTotal() kernel.Money {
	return o.lineItems.OrderTotal()
}

func (o *Order) OrderMinimum() kernel.Money {
	return o.orderMinimum
}

func (o *Order) DeliveryInformation() (DeliveryInformation, bool) {
	if o.deliveryInformation == nil {
		return DeliveryInformation{}, false
	}
	return *o.deliveryInformation, true
}

func (o *Order) PaymentInformation() (PaymentInformation, bool) {
	if o.paymentInformation == nil {
		return PaymentInformation{}, false
	}
	return *o.paymentInformation, true
}

// AssignID is called by the persistence adapter when the order is first
// saved. An identifier can be assigned only once.
func (o *Order) AssignID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() && !o.id.IsEqual(id) {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %s", o.id))
	}
	o.id = id
	return nil
}

// SetVersion records the version token the persistence adapter read or wrote.
// Versions never move backwards.
func (o *Order) SetVersion(version int64) error {
	if version < o.version {
		return errs.NewVersionIsInvalidErrorWithCause(
			"version", fmt.Errorf("%d is lower than current version %d", version, o.version))
	}
	o.version = version
	return nil
}

// Approve moves ApprovalPending to Approved.
func (o *Order) Approve() error {
	return o.apply(Approve)
}

// Reject moves ApprovalPending to Rejected.
func (o *Order) Reject() error {
	return o.apply(Reject)
}

// Cancel moves Approved to CancelPending.
func (o *Order) Cancel() error {
	return o.apply(Cancel)
}

// UndoPendingCancel moves CancelPending back to Approved.
func (o *Order) UndoPendingCancel() error {
	return o.apply(UndoPendingCancel)
}

// NoteCancelled moves CancelPending to Cancelled.
func (o *Order) NoteCancelled() error {
	return o.apply(NoteCancelled)
}

// RejectRevision moves RevisionPending back to Approved, discarding the proposal.
func (o *Order) RejectRevision() error {
	return o.apply(RejectRevision)
}

// Revise proposes a revision of an Approved order. It computes the change the
// revision would make without modifying any line item, and fails with
// *OrderMinimumNotMetError when the revised total is greater than or equal to
// the order minimum. Only when every check passes does the order move to
// RevisionPending. The returned change is meant for notifying downstream
// parties.
func (o *Order) Revise(revision OrderRevision) (LineItemQuantityChange, error) {
	next, err := o.state.Transition(Revise)
	if err != nil {
		return LineItemQuantityChange{}, err
	}

	change, err := o.lineItems.LineItemQuantityChange(revision)
	if err != nil {
		return LineItemQuantityChange{}, err
	}

	if change.NewOrderTotal.IsGreaterThanOrEqual(o.orderMinimum) {
		return LineItemQuantityChange{}, NewOrderMinimumNotMetError(change.NewOrderTotal, o.orderMinimum)
	}

	o.state = next
	return change, nil
}

// ConfirmRevision applies a revision proposed earlier with Revise and moves
// RevisionPending back to Approved. The change is recomputed from the
// revision against the current line items rather than reused from Revise.
// Delivery information is replaced only when the revision carries one, and
// quantities are updated only when the revision names any.
func (o *Order) ConfirmRevision(revision OrderRevision) (LineItemQuantityChange, error) {
	next, err := o.state.Transition(ConfirmRevision)
	if err != nil {
		return LineItemQuantityChange{}, err
	}

	change, err := o.lineItems.LineItemQuantityChange(revision)
	if err != nil {
		return LineItemQuantityChange{}, err
	}

	if revision.HasRevisedQuantities() {
		if err = o.lineItems.UpdateLineItems(revision); err != nil {
			return LineItemQuantityChange{}, err
		}
	}

	if di, ok := revision.DeliveryInformation(); ok {
		o.deliveryInformation = &di
	}

	o.state = next
	return change, nil
}

func (o *Order) apply(op Operation) error {
	next, err := o.state.Transition(op)
	if err != nil {
		return err
	}
	o.state = next
	return nil
}

func (o *Order) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	o.state = state
	return nil
}

func (o *Order) setConsumerID(consumerID kernel.UUID) error {
	if err := consumerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("consumerId", err)
	}
	o.consumerID = consumerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setLineItems(items []OrderLineItem) error {
	lineItems, err := NewOrderLineItems(items)
	if err != nil {
		return err
	}
	o.lineItems = lineItems
	return nil
}

func (o *Order) setDeliveryInformation(deliveryInformation *DeliveryInformation) error {
	if deliveryInformation == nil {
		o.deliveryInformation = nil
		return nil
	}
	if err := deliveryInformation.Validate(); err != nil {
		return err
	}
	di := *deliveryInformation
	o.deliveryInformation = &di
	return nil
}

func (o *Order) setPaymentInformation(paymentInformation *PaymentInformation) error {
	if paymentInformation == nil {
		o.paymentInformation = nil
		return nil
	}
	if err := paymentInformation.Validate(); err != nil {
		return err
	}
	pi := *paymentInformation
	o.paymentInformation = &pi
	return nil
}

func (o *Order) setOrderMinimum(orderMinimum kernel.Money) error {
	if orderMinimum.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("orderMinimum", fmt.Errorf("%s is negative", orderMinimum))
	}
	o.orderMinimum = orderMinimum
	return nil
}
