package order

import (
	"errors"
	"math"
	"sort"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrOrderRevisionIsNotConstructed = errors.New("OrderRevision must be created via NewOrderRevision constructor")

// OrderRevision is a caller's proposal to change an approved order: an
// optional wholesale replacement of the delivery information and an optional
// set of new quantities keyed by menu item id.
//
// The same revision value is passed to Order.Revise and later to
// Order.ConfirmRevision; the effect is recomputed on confirmation.
type OrderRevision struct {
	deliveryInformation *DeliveryInformation
	revisedQuantities   map[string]int

	guard guard.ConstructorGuard
}

// NewOrderRevision copies its inputs. deliveryInformation may be nil and
// revisedQuantities may be nil or empty. Quantities must be zero or more.
//
// Example:
//
//	revision, err := order.NewOrderRevision(nil, map[string]int{"margherita": 0})
//	if err != nil {
//	    return err
//	}
//	change, err := o.Revise(revision)
func NewOrderRevision(deliveryInformation *DeliveryInformation, revisedQuantities map[string]int) (OrderRevision, error) {
	revision := OrderRevision{
		revisedQuantities: make(map[string]int, len(revisedQuantities)),
		guard:             guard.NewConstructorGuard(),
	}

	if deliveryInformation != nil {
		if err := deliveryInformation.Validate(); err != nil {
			return OrderRevision{}, err
		}
		di := *deliveryInformation
		revision.deliveryInformation = &di
	}

	var validationErrs []error
	for menuItemID, quantity := range revisedQuantities {
		if menuItemID == "" {
			validationErrs = append(validationErrs, errs.NewValueIsRequiredError("menuItemId"))
			continue
		}
		if quantity < 0 {
			validationErrs = append(validationErrs,
				errs.NewValueIsOutOfRangeError("quantity of "+menuItemID, quantity, 0, math.MaxInt32))
			continue
		}
		revision.revisedQuantities[menuItemID] = quantity
	}
	if err := errors.Join(validationErrs...); err != nil {
		return OrderRevision{}, err
	}

	return revision, nil
}

func (r OrderRevision) Validate() error {
	return r.guard.Validate(ErrOrderRevisionIsNotConstructed)
}

// DeliveryInformation returns the replacement delivery information, if any.
func (r OrderRevision) DeliveryInformation() (DeliveryInformation, bool) {
	if r.deliveryInformation == nil {
		return DeliveryInformation{}, false
	}
	return *r.deliveryInformation, true
}

// RevisedLineItemQuantities returns a copy of the requested quantities.
func (r OrderRevision) RevisedLineItemQuantities() map[string]int {
	quantities := make(map[string]int, len(r.revisedQuantities))
	for k, v := range r.revisedQuantities {
		quantities[k] = v
	}
	return quantities
}

func (r OrderRevision) HasRevisedQuantities() bool {
	return len(r.revisedQuantities) > 0
}

// menuItemIDs returns the revised ids sorted, so computed deltas are deterministic.
func (r OrderRevision) menuItemIDs() []string {
	ids := make([]string, 0, len(r.revisedQuantities))
	for id := range r.revisedQuantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LineItemDelta describes the change to a single line item.
type LineItemDelta struct {
	MenuItemID    string
	OldQuantity   int
	NewQuantity   int
	QuantityDelta int
	TotalDelta    kernel.Money
}

// LineItemQuantityChange is the computed effect of a revision on the line
// items: the totals before and after, and one delta per revised item sorted by
// menu item id. It is returned from Revise so the caller can notify the
// restaurant or the consumer.
type LineItemQuantityChange struct {
	CurrentOrderTotal kernel.Money
	NewOrderTotal     kernel.Money
	Delta             kernel.Money
	LineItemDeltas    []LineItemDelta
}
